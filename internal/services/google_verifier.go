package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleIdentity is what a verified Google ID token resolves to.
type GoogleIdentity struct {
	Email string
	Name  string
}

// GoogleVerifier checks an OAuth ID token with the identity provider.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// TokeninfoVerifier validates Google ID tokens against the public tokeninfo
// endpoint and checks the audience against the configured client id.
type TokeninfoVerifier struct {
	clientID string
	client   *http.Client
}

func NewTokeninfoVerifier(clientID string) *TokeninfoVerifier {
	return &TokeninfoVerifier{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *TokeninfoVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token with Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var tokenInfo struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Audience string `json:"aud"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, fmt.Errorf("failed to decode token info: %w", err)
	}

	if tokenInfo.Email == "" {
		return nil, ErrInvalidToken
	}
	if v.clientID != "" && tokenInfo.Audience != v.clientID {
		return nil, ErrInvalidToken
	}

	return &GoogleIdentity{Email: tokenInfo.Email, Name: tokenInfo.Name}, nil
}
