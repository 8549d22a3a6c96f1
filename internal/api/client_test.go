package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func TestLogin_DecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)

		var in LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ana@exemplo.com", in.Email)
		assert.Equal(t, "segredo", in.Password)

		_, _ = w.Write([]byte(`{
			"message": "Login realizado",
			"data": {
				"usuario": {"id": 7, "nome": "Ana", "grupo": {"id": 2, "nome": "RH",
					"permissoes": [{"codigo": "a", "nome": "A"}, {"codigo": "b", "nome": "B"}]}},
				"token": "T", "origem": "portal", "id": 7
			}
		}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api/")
	require.NoError(t, err)

	res, msg, err := c.Login(context.Background(), "ana@exemplo.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Login realizado", msg)
	assert.Equal(t, "T", res.Token)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, []string{"a", "b"}, res.User.Group.PermissionCodes())
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"?","data":{"id":1}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, _, err = c.Login(context.Background(), "x@y.z", "p")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciais inválidas"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, _, err = c.Login(context.Background(), "x@y.z", "p")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Credenciais inválidas", MessageOf(err))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Error(), "401")
}

func TestGetUser_Formats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"envelope", `{"data":{"id":3,"nome":"Bia","grupo":{"permissoes":[{"codigo":"x"}]}}}`},
		{"bare record", `{"id":3,"nome":"Bia","grupo":{"permissoes":[{"codigo":"x"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/usuario/3", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL)
			require.NoError(t, err)

			u, err := c.GetUser(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, "Bia", u.Name)
			assert.Equal(t, []string{"x"}, u.Group.PermissionCodes())
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetUser(context.Background(), 99)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, MessageOf(err))
}

func TestDeleteContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contrato/5", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Contrato excluído","data":null}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	msg, err := c.DeleteContract(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Contrato excluído", msg)
}
