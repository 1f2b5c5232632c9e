package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"skillport/internal/domain/catalog"
	"skillport/internal/testutil/upstreammock"
)

func TestMasterFile_StreamsAttachment(t *testing.T) {
	gw := &upstreammock.Gateway{
		MasterFileFn: func(ctx context.Context, kind catalog.Kind) (io.ReadCloser, string, error) {
			return io.NopCloser(strings.NewReader("hashId,Category\n")), "master_skills.csv", nil
		},
	}
	e := newEchoWithValidator()
	h := NewFilesHandler(gw)

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/master-file?type=skills", nil)
	rec := httptest.NewRecorder()
	if err := h.MasterFile(e.NewContext(req, rec)); err != nil {
		t.Fatalf("MasterFile error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "master_skills.csv") {
		t.Fatalf("content-disposition: %q", cd)
	}
	if got := rec.Body.String(); got != "hashId,Category\n" {
		t.Fatalf("body: %q", got)
	}
}

func TestMasterFile_BadType(t *testing.T) {
	e := newEchoWithValidator()
	h := NewFilesHandler(&upstreammock.Gateway{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/master-file?type=badges", nil)
	rec := httptest.NewRecorder()
	if err := h.MasterFile(e.NewContext(req, rec)); err != nil {
		t.Fatalf("MasterFile error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestUploadCV(t *testing.T) {
	var gotEmail, gotName, gotBody string
	gw := &upstreammock.Gateway{
		UploadCVFn: func(ctx context.Context, email, filename string, body io.Reader) error {
			b, _ := io.ReadAll(body)
			gotEmail, gotName, gotBody = email, filename, string(b)
			return nil
		},
	}
	e := newEchoWithValidator()
	h := NewFilesHandler(gw)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("email", "Jane.Doe@corp.example")
	fw, _ := mw.CreateFormFile("file", "cv.pdf")
	_, _ = fw.Write([]byte("%PDF-1.4"))
	_ = mw.Close()

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/cv", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	if err := h.UploadCV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("UploadCV error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	if gotEmail != "jane.doe@corp.example" || gotName != "cv.pdf" || gotBody != "%PDF-1.4" {
		t.Fatalf("forwarded: %q %q %q", gotEmail, gotName, gotBody)
	}
}

func TestUploadCV_MissingParts(t *testing.T) {
	e := newEchoWithValidator()
	h := NewFilesHandler(&upstreammock.Gateway{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("email", "jane@corp.example")
	_ = mw.Close()

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/cv", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	if err := h.UploadCV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("UploadCV error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	if !containsFieldMsg(body.Details, "file", "is required") {
		t.Fatalf("missing file detail: %+v", body.Details)
	}
}
