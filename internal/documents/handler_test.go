package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/bootstrap"
	"github.com/mtb0903/manage-docs/internal/ocr"
	"github.com/mtb0903/manage-docs/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		UploadDir:       t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		OCREngine:       "stub",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func loginAs(t *testing.T, app *bootstrap.App, username, password string) *http.Cookie {
	t.Helper()

	if _, err := app.UsersService.Register(context.Background(), username, password); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("login: expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func uploadPDF(t *testing.T, app *bootstrap.App, cookie *http.Cookie, fileName string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("%PDF-1.4 test content")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/add_doc", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func listDocs(t *testing.T, app *bootstrap.App, cookie *http.Cookie) []struct {
	ID  int64   `json:"id"`
	Doc string  `json:"doc"`
	OCR *string `json:"ocr"`
} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/list_docs", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("list_docs: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var rows []struct {
		ID  int64   `json:"id"`
		Doc string  `json:"doc"`
		OCR *string `json:"ocr"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return rows
}

func TestEndToEndUploadOCRList(t *testing.T) {
	app := buildApp(t)
	cookie := loginAs(t, app, "u1", "pw1")

	resp := uploadPDF(t, app, cookie, "a.pdf")
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	rows := listDocs(t, app, cookie)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one document, got %d", len(rows))
	}
	if rows[0].Doc != "a.pdf" {
		t.Fatalf("doc = %q, want a.pdf", rows[0].Doc)
	}
	if rows[0].OCR != nil {
		t.Fatalf("new document must have null ocr, got %q", *rows[0].OCR)
	}

	form := url.Values{"doc_id": {jsonNumber(rows[0].ID)}}
	reqOCR := httptest.NewRequest(http.MethodPost, "/run_ocr", strings.NewReader(form.Encode()))
	reqOCR.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	reqOCR.AddCookie(cookie)
	respOCR := httptest.NewRecorder()
	app.Router.ServeHTTP(respOCR, reqOCR)

	if respOCR.Code != http.StatusOK {
		t.Fatalf("run_ocr: expected 200, got %d: %s", respOCR.Code, respOCR.Body.String())
	}

	rows = listDocs(t, app, cookie)
	if rows[0].OCR == nil || *rows[0].OCR != ocr.StubText {
		t.Fatalf("expected stub OCR text after run, got %v", rows[0].OCR)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := buildApp(t)
	cookie := loginAs(t, app, "u1", "pw1")

	resp := uploadPDF(t, app, cookie, "notes.txt")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for notes.txt, got %d", resp.Code)
	}
	if rows := listDocs(t, app, cookie); len(rows) != 0 {
		t.Fatalf("rejected upload must not create a row, got %d", len(rows))
	}
}

func TestUploadAcceptsUppercasePDF(t *testing.T) {
	app := buildApp(t)
	cookie := loginAs(t, app, "u1", "pw1")

	resp := uploadPDF(t, app, cookie, "report.PDF")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for report.PDF, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRunOCRCannotTouchOtherUsersDocument(t *testing.T) {
	app := buildApp(t)
	cookieA := loginAs(t, app, "alice", "pw")
	cookieB := loginAs(t, app, "bob", "pw")

	if resp := uploadPDF(t, app, cookieB, "bobs.pdf"); resp.Code != http.StatusCreated {
		t.Fatalf("bob upload: expected 201, got %d", resp.Code)
	}
	bobRows := listDocs(t, app, cookieB)

	form := url.Values{"doc_id": {jsonNumber(bobRows[0].ID)}}
	req := httptest.NewRequest(http.MethodPost, "/run_ocr", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookieA)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owned document, got %d", resp.Code)
	}

	bobRows = listDocs(t, app, cookieB)
	if bobRows[0].OCR != nil {
		t.Fatalf("bob's document was mutated by alice: %q", *bobRows[0].OCR)
	}
}

func TestListDocsIsPerUser(t *testing.T) {
	app := buildApp(t)
	cookieA := loginAs(t, app, "alice", "pw")
	cookieB := loginAs(t, app, "bob", "pw")

	uploadPDF(t, app, cookieA, "a1.pdf")
	uploadPDF(t, app, cookieA, "a2.pdf")
	uploadPDF(t, app, cookieB, "b1.pdf")

	if rows := listDocs(t, app, cookieA); len(rows) != 2 {
		t.Fatalf("alice: expected 2 documents, got %d", len(rows))
	}
	if rows := listDocs(t, app, cookieB); len(rows) != 1 {
		t.Fatalf("bob: expected 1 document, got %d", len(rows))
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodGet, "/list_docs", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	location := resp.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?next=") {
		t.Fatalf("expected redirect to login with next, got %q", location)
	}
	if !strings.Contains(location, url.QueryEscape("/list_docs")) {
		t.Fatalf("expected original destination preserved, got %q", location)
	}
}

func TestLoginRejectsOpenRedirect(t *testing.T) {
	app := buildApp(t)
	if _, err := app.UsersService.Register(context.Background(), "u1", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	form := url.Values{"username": {"u1"}, "password": {"pw1"}}
	req := httptest.NewRequest(http.MethodPost, "/login?next="+url.QueryEscape("https://evil.example/"), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %q", location)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	app := buildApp(t)
	if _, err := app.UsersService.Register(context.Background(), "known", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	attempt := func(username, password string) string {
		form := url.Values{"username": {username}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.Code)
		}
		return resp.Body.String()
	}

	unknownUser := attempt("ghost", "pw")
	wrongPassword := attempt("known", "bad")
	if unknownUser != wrongPassword {
		t.Fatalf("login failure bodies differ:\n%s\n%s", unknownUser, wrongPassword)
	}
}

func TestAttributesEndpoints(t *testing.T) {
	app := buildApp(t)
	cookie := loginAs(t, app, "u1", "pw1")

	uploadPDF(t, app, cookie, "a.pdf")
	rows := listDocs(t, app, cookie)
	docPath := "/docs/" + jsonNumber(rows[0].ID) + "/attributes"

	set := func(key, value string) {
		form := url.Values{"key": {key}, "value": {value}}
		req := httptest.NewRequest(http.MethodPost, docPath, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookie)
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("set attribute: expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
	}

	set("k", "v")
	set("k", "v2")

	req := httptest.NewRequest(http.MethodGet, docPath, nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("get attributes: expected 200, got %d", resp.Code)
	}
	var attrs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		t.Fatalf("decode attributes: %v", err)
	}
	if len(attrs) != 1 || attrs["k"] != "v2" {
		t.Fatalf("expected upserted single entry, got %v", attrs)
	}
}

func jsonNumber(id int64) string {
	return strconv.FormatInt(id, 10)
}
