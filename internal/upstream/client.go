package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/domain/selection"
)

// Client talks to the remote portal API over HTTP. Paths mirror the
// portal's function endpoints (get_master_skills, save_employee_skills,
// get_expert_skill_request, review_skill, get_master_file, upload_cv).
type Client struct {
	base string
	hc   *http.Client
	log  *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
		log:  log,
	}
}

func masterPath(kind catalog.Kind) string {
	if kind == catalog.KindCertificates {
		return "/get_master_certificates"
	}
	return "/get_master_skills"
}

func employeePath(kind catalog.Kind) string {
	if kind == catalog.KindCertificates {
		return "/get_employee_certificates"
	}
	return "/get_employee_skills"
}

func savePath(kind catalog.Kind) string {
	if kind == catalog.KindCertificates {
		return "/save_employee_certificates"
	}
	return "/save_employee_skills"
}

func requestsPath(kind catalog.Kind) string {
	if kind == catalog.KindCertificates {
		return "/get_expert_cert_request"
	}
	return "/get_expert_skill_request"
}

func (c *Client) FetchMaster(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, masterPath(kind), nil, &raw); err != nil {
		return nil, err
	}
	items, err := catalog.Normalize(kind, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return items, nil
}

func (c *Client) FetchEmployee(ctx context.Context, email string, kind catalog.Kind) (selection.Preselection, error) {
	var pre selection.Preselection
	body := map[string]string{"email": strings.ToLower(email)}

	if kind == catalog.KindCertificates {
		var out struct {
			Certificates map[string]selection.CertEntry `json:"certificates"`
		}
		err := c.postJSON(ctx, employeePath(kind), body, &out)
		if isNotFound(err) {
			return pre, nil
		}
		if err != nil {
			return pre, err
		}
		pre.Certs = out.Certificates
		return pre, nil
	}

	var out struct {
		Skills map[string]selection.Entry `json:"skills"`
	}
	err := c.postJSON(ctx, employeePath(kind), body, &out)
	if isNotFound(err) {
		return pre, nil
	}
	if err != nil {
		return pre, err
	}
	pre.Skills = out.Skills
	return pre, nil
}

func (c *Client) SaveEmployee(ctx context.Context, req SaveRequest) error {
	req.Email = strings.ToLower(req.Email)
	req.ManagerEmail = strings.ToLower(req.ManagerEmail)
	return c.postJSON(ctx, savePath(req.Kind), req, nil)
}

func (c *Client) FetchPendingRequests(ctx context.Context, reviewerEmail string, kind catalog.Kind) ([]review.Group, error) {
	var groups []review.Group
	q := url.Values{"email": {strings.ToLower(reviewerEmail)}}
	err := c.getJSON(ctx, requestsPath(kind), q, &groups)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) Review(ctx context.Context, req ReviewRequest) error {
	type itemRef struct {
		EmpSkillID string `json:"empSkillId"`
	}
	payload := struct {
		ReviewRequest
		Items []itemRef `json:"skills"`
	}{ReviewRequest: req}
	for _, id := range req.ItemIDs {
		payload.Items = append(payload.Items, itemRef{EmpSkillID: id})
	}
	return c.postJSON(ctx, "/review_skill", payload, nil)
}

func (c *Client) MasterFile(ctx context.Context, kind catalog.Kind) (io.ReadCloser, string, error) {
	q := url.Values{"type": {string(kind)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/get_master_file?"+q.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", statusErr(resp.StatusCode)
	}
	name := "master_" + string(kind) + ".csv"
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			name = params["filename"]
		}
	}
	return resp.Body, name, nil
}

func (c *Client) UploadCV(ctx context.Context, email, filename string, body io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("email", strings.ToLower(email)); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("cv", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, body); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload_cv", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusErr(resp.StatusCode)
	}
	return nil
}

// ---- transport helpers ----

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

func isNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

func statusErr(code int) error {
	if code == http.StatusNotFound {
		return notFoundError{}
	}
	if code >= 500 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
	return fmt.Errorf("%w: status %d", ErrRejected, code)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Correlation-Id", uuid.NewString())
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", req.URL.Path).Warn("upstream call failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.roundTrip(req, out)
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusErr(resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrRejected, err)
	}
	return nil
}
