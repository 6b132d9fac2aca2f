package types

import "time"

// fields are optional for httpx so that missing values reach the validator
// and come back as MISSING_FIELD rather than a parse failure

type TokenRequest struct {
	ClientID     string `json:"clientId,optional" validate:"required,identifier"`
	ClientSecret string `json:"clientSecret,optional" validate:"required,min=8,max=256"`
}

type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type CreateJobRequest struct {
	Name     string `json:"name,optional" validate:"required,identifier"`
	Source   string `json:"source,optional" validate:"required,max=512,safe_text"`
	Target   string `json:"target,optional" validate:"required,max=512,safe_text"`
	Schedule string `json:"schedule,optional" validate:"omitempty,cron"`
}

type JobRequest struct {
	ID string `path:"id" validate:"required,uuid"`
}

type JobResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Schedule  string     `json:"schedule,omitempty"`
	State     string     `json:"state"`
	CreatedBy string     `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

type ErrorCodeInfo struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Retryable   bool   `json:"retryable"`
	HTTPStatus  int    `json:"httpStatus"`
}

type ErrorCodesResponse struct {
	Codes []ErrorCodeInfo `json:"codes"`
}
