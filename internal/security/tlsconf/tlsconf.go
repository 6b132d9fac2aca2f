// Package tlsconf builds the server TLS configuration from files and keeps
// the served certificate reloadable without a restart.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

const component = "tls"

var cipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
	tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// CertInfo describes the certificate currently served.
type CertInfo struct {
	Subject      string    `json:"subject"`
	Issuer       string    `json:"issuer"`
	SerialNumber string    `json:"serialNumber"`
	DNSNames     []string  `json:"dnsNames"`
	NotBefore    time.Time `json:"notBefore"`
	NotAfter     time.Time `json:"notAfter"`
}

// Expired reports whether the certificate is outside its validity window at t.
func (c CertInfo) Expired(t time.Time) bool {
	return t.Before(c.NotBefore) || t.After(c.NotAfter)
}

type Manager struct {
	mu   sync.RWMutex
	conf config.TLSConf

	minVersion uint16
	clientCAs  *x509.CertPool
	cert       *tls.Certificate
	leaf       *x509.Certificate
}

// New loads the key pair and optional client CA named by conf.
func New(conf config.TLSConf) (*Manager, error) {
	minVersion, err := parseVersion(conf.MinVersion)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		conf:       conf,
		minVersion: minVersion,
	}

	if conf.ClientCAFile != "" {
		if m.clientCAs, err = loadCertPool(conf.ClientCAFile); err != nil {
			return nil, err
		}
	}

	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVersion(v string) (uint16, error) {
	switch v {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, errorx.NewSystemError(errorx.CodeConfigurationError,
			fmt.Sprintf("unsupported TLS version %q", v), component, map[string]string{"min_version": v})
	}
}

func loadCertPool(file string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(file)
	if err != nil {
		return nil, fileError("read client CA", file, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errorx.NewSystemError(errorx.CodeConfigurationError,
			"client CA file holds no PEM certificates", component, map[string]string{"file": file})
	}
	return pool, nil
}

func fileError(action, file string, err error) error {
	return errorx.NewSystemError(errorx.CodeFileError, action+" failed", component,
		map[string]string{"file": file}).WithCause(err)
}

// Reload reads the key pair again. On failure the previous certificate
// keeps being served.
func (m *Manager) Reload() error {
	if _, err := os.Stat(m.conf.CertFile); err != nil {
		return fileError("read certificate", m.conf.CertFile, err)
	}
	if _, err := os.Stat(m.conf.KeyFile); err != nil {
		return fileError("read private key", m.conf.KeyFile, err)
	}

	cert, err := tls.LoadX509KeyPair(m.conf.CertFile, m.conf.KeyFile)
	if err != nil {
		return errorx.NewSystemError(errorx.CodeConfigurationError, "invalid key pair", component,
			map[string]string{"file": m.conf.CertFile}).WithCause(err)
	}

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return errorx.NewSystemError(errorx.CodeConfigurationError, "invalid certificate", component,
			map[string]string{"file": m.conf.CertFile}).WithCause(err)
	}
	cert.Leaf = leaf

	m.mu.Lock()
	m.cert, m.leaf = &cert, leaf
	m.mu.Unlock()

	logx.Infow("tls certificate loaded",
		logx.Field("subject", leaf.Subject.String()),
		logx.Field("not_after", leaf.NotAfter))
	return nil
}

// TLSConfig returns a server configuration that always serves the most
// recently loaded certificate.
func (m *Manager) TLSConfig() *tls.Config {
	cfg := &tls.Config{
		MinVersion:     m.minVersion,
		GetCertificate: m.getCertificate,
	}
	if m.minVersion < tls.VersionTLS13 {
		cfg.CipherSuites = cipherSuites
	}
	if m.clientCAs != nil {
		cfg.ClientCAs = m.clientCAs
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg
}

func (m *Manager) getCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cert, nil
}

func (m *Manager) CertInfo() CertInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return CertInfo{
		Subject:      m.leaf.Subject.String(),
		Issuer:       m.leaf.Issuer.String(),
		SerialNumber: m.leaf.SerialNumber.String(),
		DNSNames:     append([]string(nil), m.leaf.DNSNames...),
		NotBefore:    m.leaf.NotBefore,
		NotAfter:     m.leaf.NotAfter,
	}
}
