package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
	"github.com/go-resty/resty/v2"
)

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	_, err := c.send(c.request(ctx).SetResult(out), resty.MethodGet, path)
	return err
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	req := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in)
	if out != nil {
		req.SetResult(out)
	}
	_, err := c.send(req, resty.MethodPost, path)
	return err
}

// Login submits the credentials as the form fields username and password.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var tok models.TokenResponse
	req := c.request(ctx).
		SetFormData(map[string]string{"username": email, "password": password}).
		SetResult(&tok)
	if _, err := c.send(req, resty.MethodPost, "/auth/jwt/login"); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	var tok models.TokenResponse
	if err := c.postJSON(ctx, "/auth/register", req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// CurrentUser returns the raw profile body; decode it with
// models.DecodeIdentity.
func (c *HTTPClient) CurrentUser(ctx context.Context) ([]byte, error) {
	resp, err := c.send(c.request(ctx), resty.MethodGet, "/auth/users/me")
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// CurrentUserWithToken fetches the profile that token belongs to, ignoring
// the stored credential. A 401 here rejects token only and does not run the
// unauthorized hooks.
func (c *HTTPClient) CurrentUserWithToken(ctx context.Context, token string) ([]byte, error) {
	ctx = context.WithValue(ctx, explicitTokenKey{}, true)
	req := c.request(ctx).
		SetAuthScheme(common.BearerScheme).
		SetAuthToken(token)
	resp, err := c.send(req, resty.MethodGet, "/auth/users/me")
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// GoogleAuthorizeURL is a browser navigation target, not an API call.
func (c *HTTPClient) GoogleAuthorizeURL() string {
	return c.baseURL + "/auth/google/authorize"
}

// Health probes path. A 2xx body that is not JSON is returned as a JSON
// string.
func (c *HTTPClient) Health(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.send(c.request(ctx), resty.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body := resp.Body(); json.Valid(body) {
		return json.RawMessage(body), nil
	}
	quoted, err := json.Marshal(strings.TrimSpace(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("encode health body: %w", err)
	}
	return quoted, nil
}

func (c *HTTPClient) Answer(ctx context.Context, question string) (*models.ChatAnswer, error) {
	var out models.ChatAnswer
	if err := c.postJSON(ctx, "/chat/answer", &models.ChatRequest{Question: question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPDF posts content as the multipart field "file". description is sent
// only when it is not blank.
func (c *HTTPClient) UploadPDF(ctx context.Context, filename string, content io.Reader, description string) error {
	req := c.request(ctx).SetMultipartField("file", filename, "application/pdf", content)
	if d := strings.TrimSpace(description); d != "" {
		req.SetMultipartFormData(map[string]string{"description": d})
	}
	_, err := c.send(req, resty.MethodPost, "/content/upload-pdf")
	return err
}

func (c *HTTPClient) UploadedFiles(ctx context.Context) ([]models.UploadedFile, error) {
	var out models.UploadedFileList
	if err := c.getJSON(ctx, "/content/uploaded-files", &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

func (c *HTTPClient) Ingest(ctx context.Context, text string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.postJSON(ctx, "/content/ingest", &models.TextRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Search(ctx context.Context, text string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.postJSON(ctx, "/content/search", &models.TextRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Grades(ctx context.Context) ([]string, error) {
	var out models.GradeList
	if err := c.getJSON(ctx, "/content/curriculum/grades", &out); err != nil {
		return nil, err
	}
	return out.Grades, nil
}

func (c *HTTPClient) UserCurriculum(ctx context.Context) (*models.CurriculumStructure, error) {
	var out models.CurriculumStructure
	if err := c.getJSON(ctx, "/content/curriculum/user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CurriculumStructure(ctx context.Context, grade string) (*models.GradeStructure, error) {
	var out models.GradeStructure
	req := c.request(ctx).
		SetPathParam("grade", grade).
		SetResult(&out)
	if _, err := c.send(req, resty.MethodGet, "/content/curriculum/structure/{grade}"); err != nil {
		return nil, err
	}
	if out.Grade == "" {
		out.Grade = grade
	}
	return &out, nil
}

func (c *HTTPClient) Concepts(ctx context.Context, grade, term, subject string) (*models.ConceptList, error) {
	var out models.ConceptList
	req := c.request(ctx).
		SetPathParams(map[string]string{"grade": grade, "term": term, "subject": subject}).
		SetResult(&out)
	if _, err := c.send(req, resty.MethodGet, "/content/curriculum/{grade}/{term}/{subject}"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Grade(ctx context.Context, answer string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.postJSON(ctx, "/assessment/grade", &models.GradeRequest{Answer: answer}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Notify(ctx context.Context, n *models.Notification) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.postJSON(ctx, "/notify/", n, &out); err != nil {
		return nil, err
	}
	return out, nil
}
