package rest

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/dwikikusuma/shopfront/internal/account/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

type userWire struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role,omitempty"`
	RegisterTime string `json:"register_time"`
}

var registerTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (w userWire) toDomain() domain.User {
	role := domain.Role(w.Role)
	if role == "" {
		role = domain.RoleUser
	}

	var registered time.Time
	for _, layout := range registerTimeLayouts {
		if t, err := time.Parse(layout, w.RegisterTime); err == nil {
			registered = t
			break
		}
	}

	return domain.User{
		ID:           w.ID,
		Username:     w.Username,
		Email:        w.Email,
		Phone:        w.Phone,
		Avatar:       w.Avatar,
		Role:         role,
		RegisterTime: registered,
	}
}

func (c *Client) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	body := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{Identifier: identifier, Password: password}

	var w userWire
	if err := c.api.Post(ctx, "/users/login", nil, body, &w); err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) AdminLogin(ctx context.Context, identifier, password string) (domain.User, error) {
	body := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{Identifier: identifier, Password: password}

	var w userWire
	if err := c.api.Post(ctx, "/users/admin/login", nil, body, &w); err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) Register(ctx context.Context, username, email, password, phone string) (domain.User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone,omitempty"`
	}{Username: username, Email: email, Password: password, Phone: phone}

	var w userWire
	if err := c.api.Post(ctx, "/users/register", nil, body, &w); err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) Update(ctx context.Context, user domain.User) (domain.User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone,omitempty"`
		Avatar   string `json:"avatar,omitempty"`
	}{Username: user.Username, Email: user.Email, Phone: user.Phone, Avatar: user.Avatar}

	var w userWire
	if err := c.api.Put(ctx, "/users/"+url.PathEscape(user.ID), body, &w); err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}

func (c *Client) ResetPassword(ctx context.Context, username, email, newPassword string) error {
	body := struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}{Username: username, Email: email, NewPassword: newPassword}

	return c.api.Post(ctx, "/users/reset-password", nil, body, nil)
}

func (c *Client) UploadAvatar(ctx context.Context, userID, filename string, file io.Reader) (domain.User, error) {
	var w userWire
	if err := c.api.PostMultipart(ctx, "/users/"+url.PathEscape(userID)+"/avatar", "file", filename, file, &w); err != nil {
		return domain.User{}, err
	}
	return w.toDomain(), nil
}
