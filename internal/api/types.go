package api

import "time"

// Permission is a permission as embedded in a group.
type Permission struct {
	ID   int64  `json:"id,omitempty"`
	Code string `json:"codigo"`
	Name string `json:"nome"`
}

// Group is a named collection of permissions.
type Group struct {
	ID          int64        `json:"id"`
	Name        string       `json:"nome"`
	Permissions []Permission `json:"permissoes"`
}

// PermissionCodes extracts the permission codes of the group in backend order.
func (g Group) PermissionCodes() []string {
	codes := make([]string, 0, len(g.Permissions))
	for _, p := range g.Permissions {
		codes = append(codes, p.Code)
	}

	return codes
}

// User is a full user record including its group.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Email  string `json:"email"`
	Active bool   `json:"ativo"`
	Group  Group  `json:"grupo"`
}

// LoginResult is the data part of a successful login response.
type LoginResult struct {
	User   User   `json:"usuario"`
	Token  string `json:"token"`
	Origin string `json:"origem"`
	ID     int64  `json:"id"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Contract is a service-provider contract.
type Contract struct {
	ID        int64     `json:"id"`
	Number    string    `json:"numero"`
	Provider  string    `json:"prestador"`
	Value     float64   `json:"valor"`
	StartDate time.Time `json:"inicio"`
	EndDate   time.Time `json:"fim"`
	Status    string    `json:"status"`
}

// Announcement is an entry of the internal announcement feed.
type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Body        string    `json:"conteudo"`
	Author      string    `json:"autor"`
	PublishedAt time.Time `json:"publicado_em"`
}

// Envelope is the common response wrapper of the backend.
type Envelope[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// MessageBody is the error body of the backend.
type MessageBody struct {
	Message string `json:"message"`
}
