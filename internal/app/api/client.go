package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink-web/internal/app/models"
	"github.com/campuslink/campuslink-web/internal/app/observability/metrics"
)

// Endpoint paths on the campus API, mirrored from its published surface.
const (
	pathLogin              = "/api/v1/login"
	pathRegister           = "/api/v1/register"
	pathProfile            = "/api/v1/profile"
	pathStudentProfile     = "/api/v1/student/profile"
	pathStudentProjects    = "/api/v1/student/projects"
	pathAddStudentProject  = "/api/v1/student/add-project"
	pathStudentProject     = "/api/v1/student/project/" // + projectID
	pathFacultyProfile     = "/api/v1/faculty/profile"
	pathFacultyPublication = "/api/v1/faculty/publications"
	pathPublicationsBatch  = "/api/v1/publications/batch"
	pathAvatar             = "/api/v1/avatar"
)

// Client talks to the remote campus API. It owns no session state: the
// bearer token is passed per call by whoever holds the visitor's credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type loginResponse struct {
	Token string             `json:"token"`
	Data  *models.UserRecord `json:"data"`
}

type rejectionBody struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token and a user snapshot.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.UserRecord, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, "", body, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.Data == nil {
		return "", nil, &Error{Status: http.StatusOK, Message: ""}
	}
	return resp.Token, resp.Data, nil
}

// Register creates an account. It does not authenticate the new user.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, pathRegister, "", req, nil)
}

// GetProfile returns the caller's own account snapshot.
func (c *Client) GetProfile(ctx context.Context, token string) (*models.UserRecord, error) {
	var resp struct {
		Data *models.UserRecord `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, pathProfile, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, models.ErrNotFound
	}
	return resp.Data, nil
}

// UpdateStudentProfile replaces the student-editable profile fields.
func (c *Client) UpdateStudentProfile(ctx context.Context, token string, user *models.UserRecord) (*models.UserRecord, error) {
	var resp struct {
		Data *models.UserRecord `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, pathStudentProfile, token, user, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateFacultyProfile replaces the faculty-editable profile fields.
func (c *Client) UpdateFacultyProfile(ctx context.Context, token string, user *models.UserRecord) (*models.UserRecord, error) {
	var resp struct {
		Data *models.UserRecord `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, pathFacultyProfile, token, user, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateAvatar points the caller's profile at an already-uploaded image URL.
func (c *Client) UpdateAvatar(ctx context.Context, token, avatarURL string) error {
	body := map[string]string{"avatar": avatarURL}
	return c.do(ctx, http.MethodPut, pathAvatar, token, body, nil)
}

// StudentProjects lists the caller's portfolio projects.
func (c *Client) StudentProjects(ctx context.Context, token string) ([]models.StudentProject, error) {
	var resp struct {
		Data []models.StudentProject `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, pathStudentProjects, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddStudentProject appends a portfolio project.
func (c *Client) AddStudentProject(ctx context.Context, token string, project models.StudentProject) error {
	return c.do(ctx, http.MethodPost, pathAddStudentProject, token, project, nil)
}

// DeleteStudentProject removes a portfolio project by id.
func (c *Client) DeleteStudentProject(ctx context.Context, token, projectID string) error {
	return c.do(ctx, http.MethodDelete, pathStudentProject+projectID, token, nil, nil)
}

// AddFacultyPublication records a new publication.
func (c *Client) AddFacultyPublication(ctx context.Context, token string, pub models.Publication) error {
	return c.do(ctx, http.MethodPost, pathFacultyPublication, token, pub, nil)
}

// PublicationsByIDs fetches a batch of publications.
func (c *Client) PublicationsByIDs(ctx context.Context, token string, ids []string) ([]models.Publication, error) {
	body := map[string][]string{"ids": ids}
	var resp struct {
		Data []models.Publication `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, pathPublicationsBatch, token, body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// do performs one round trip. Transport failures come back wrapped, 401/403
// as ErrSessionRevoked, other non-2xx as *Error with the body message when
// one was present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	c.record(ctx, method, path, start, err)
	if err != nil {
		c.logger.Warn("Campus API unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.Wrapf(err, "campus api %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Info("Campus API rejected credential",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s %s: %w", method, path, ErrSessionRevoked)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var rejection rejectionBody
		// A malformed error body is fine; the message just stays empty.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&rejection)
		return &Error{Status: resp.StatusCode, Message: rejection.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

func (c *Client) record(ctx context.Context, method, path string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.UpstreamRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, attrs)
	}
}
