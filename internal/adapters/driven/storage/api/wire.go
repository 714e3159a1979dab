package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// flexID accepts numeric and string ids and writes numeric ids back as numbers.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

func (id flexID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type wireUser struct {
	ID      flexID `json:"id,omitempty"`
	Auth0ID string `json:"auth0_id"`
}

// wireDocument is the ReadDocument shape of the API.
type wireDocument struct {
	ID       flexID   `json:"id"`
	Filename string   `json:"filename"`
	FileSize int64    `json:"fileSize"`
	Lang     string   `json:"lang,omitempty"`
	User     wireUser `json:"user"`
}

func (w wireDocument) toDomain(ownerID string) domain.Document {
	owner := w.User.Auth0ID
	if owner == "" {
		owner = ownerID
	}
	return domain.Document{
		ID:       string(w.ID),
		OwnerID:  owner,
		Filename: w.Filename,
		FileSize: w.FileSize,
		Language: domain.Language(w.Lang),
	}
}

func fromDomain(d domain.Document) wireDocument {
	return wireDocument{
		ID:       flexID(d.ID),
		Filename: d.Filename,
		FileSize: d.FileSize,
		Lang:     d.Language.String(),
		User:     wireUser{Auth0ID: d.OwnerID},
	}
}

type ownerRequest struct {
	Auth0ID string `json:"auth0_id"`
}

type deleteRequest struct {
	Documents []wireDocument `json:"documents"`
}

type languageKey struct {
	Key string `json:"key"`
}

type languageRequest struct {
	Language languageKey `json:"language"`
	Auth0ID  string      `json:"auth0_id"`
}
