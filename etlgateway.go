package main

import (
	"flag"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/errorhandler"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/handler"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/svc"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

var configFile = flag.String("f", "etc/etlgateway-api.yaml", "the config file")

func main() {
	flag.Parse()

	config.LoadEnv()

	// ${VAR} placeholders in the yaml are resolved from the environment
	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	errorx.Initialize(errorx.WithStackFilters("runtime.", "net/http."))
	errorhandler.Init(c.ErrorHandler, errorhandler.PriorityConsumer, errorhandler.MetricsConsumer)
	defer errorhandler.Shutdown()

	errorx.RegisterMetrics(prometheus.DefaultRegisterer)
	mapper.RegisterMetrics(prometheus.DefaultRegisterer)
	errorhandler.RegisterMetrics(prometheus.DefaultRegisterer)

	ctx := svc.NewServiceContext(c)

	var opts []rest.RunOption
	if ctx.TLS != nil {
		c.RestConf.CertFile = c.TLS.CertFile
		c.RestConf.KeyFile = c.TLS.KeyFile
		opts = append(opts, rest.WithTLSConfig(ctx.TLS.TLSConfig()))
	}

	server := rest.MustNewServer(c.RestConf, opts...)
	defer server.Stop()

	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
