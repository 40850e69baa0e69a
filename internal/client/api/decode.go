package api

import (
	"encoding/json"
	"fmt"

	"github.com/avetikov/cityreport/internal/client/models"
)

// The backend has shipped two envelope generations for auth payloads:
//
//	{"tokens": {"accessToken": ..., "refreshToken": ...}, "user": {...}}
//	{"accessToken": ..., "refreshToken": ..., "user": {...}}
//
// The decoders below enumerate exactly these shapes and fail closed on
// anything else, instead of probing nesting levels at runtime.

type authBody struct {
	Tokens       *models.TokenPair `json:"tokens"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	User         *models.User      `json:"user"`
}

// DecodeAuthPayload decodes a login-style payload. Both tokens and a user
// with a non-empty ID are required; a "successful" body missing any of the
// three is ErrMalformedPayload.
func DecodeAuthPayload(data json.RawMessage) (*models.AuthPayload, error) {
	tokens, user, err := decodeAuthBody(data)
	if err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, fmt.Errorf("%w: missing tokens", ErrMalformedPayload)
	}
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("%w: missing user", ErrMalformedPayload)
	}
	return &models.AuthPayload{Tokens: *tokens, User: *user}, nil
}

// DecodeTokenPair decodes a refresh-style payload. The access token is
// required; the refresh token may be absent when the backend does not
// rotate it.
func DecodeTokenPair(data json.RawMessage) (*models.TokenPair, error) {
	tokens, _, err := decodeAuthBody(data)
	if err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrMalformedPayload)
	}
	return tokens, nil
}

// DecodeUser decodes a profile-style payload: either {"user": {...}} or a
// bare user object. A user without an ID fails closed.
func DecodeUser(data json.RawMessage) (*models.User, error) {
	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil && wrapped.User.ID != "" {
		return wrapped.User, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		return nil, fmt.Errorf("%w: missing user", ErrMalformedPayload)
	}
	return &user, nil
}

func decodeAuthBody(data json.RawMessage) (*models.TokenPair, *models.User, error) {
	var body authBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}

	if body.Tokens != nil {
		return body.Tokens, body.User, nil
	}
	return &models.TokenPair{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}, body.User, nil
}
