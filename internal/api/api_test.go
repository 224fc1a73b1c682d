package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"rfpdesk/internal/api"
	"rfpdesk/internal/engine"
	"rfpdesk/internal/model"
	"rfpdesk/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newRouter(t *testing.T, st *store.Store) *gin.Engine {
	t.Helper()
	eng := engine.New(engine.Config{Store: st})
	h := api.NewHandler(eng, st, t.TempDir())

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func TestParseEndpoint(t *testing.T) {
	router := newRouter(t, nil)

	body, contentType := multipartUpload(t, "questionnaire.xlsx", fixtureBytes(t), map[string]string{
		"sheets":  "D",
		"batches": "true",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var report model.ParseReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if got, want := report.File, "questionnaire.xlsx"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
	if len(report.Sheets) != 2 {
		t.Fatalf("got %d sheets, want 2", len(report.Sheets))
	}
	if len(report.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(report.Questions))
	}
	if len(report.Batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(report.Batches))
	}
}

func TestParseRejectsUnreadableUpload(t *testing.T) {
	router := newRouter(t, nil)

	body, contentType := multipartUpload(t, "junk.xlsx", []byte("not a spreadsheet"), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestParseRequiresFile(t *testing.T) {
	router := newRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestWriteAndDownload(t *testing.T) {
	router := newRouter(t, nil)

	answers := model.AnswerSet{
		Answers: map[string][]model.AnswerRecord{
			"D. Functional Requirements": {
				{Row: 2, ResponseCol: "C", Answer: "Yes, via SAML 2.0"},
			},
		},
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("marshal answers: %v", err)
	}

	body, contentType := multipartUpload(t, "questionnaire.xlsx", fixtureBytes(t), map[string]string{
		"answers": string(answersJSON),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/write", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		OutputFile    string             `json:"output_file"`
		DownloadToken string             `json:"download_token"`
		Report        *model.WriteReport `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got, want := resp.OutputFile, "questionnaire_answered.xlsx"; got != want {
		t.Fatalf("output_file=%q, want %q", got, want)
	}
	if resp.Report == nil || resp.Report.Applied != 1 {
		t.Fatalf("report=%+v, want applied=1", resp.Report)
	}
	if resp.DownloadToken == "" {
		t.Fatal("no download token issued")
	}

	dw := httptest.NewRecorder()
	dreq := httptest.NewRequest(http.MethodGet, "/api/download/"+resp.DownloadToken, nil)
	router.ServeHTTP(dw, dreq)
	if dw.Code != http.StatusOK {
		t.Fatalf("download status=%d", dw.Code)
	}
	if dw.Body.Len() == 0 {
		t.Fatal("downloaded file is empty")
	}
}

func TestDownloadUnknownToken(t *testing.T) {
	router := newRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/download/nope", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestWriteRequiresAnswers(t *testing.T) {
	router := newRouter(t, nil)

	body, contentType := multipartUpload(t, "questionnaire.xlsx", fixtureBytes(t), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/write", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestStatusAndRuns(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "rfpdesk.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer st.Close()
	if err := st.RecordRun(store.Run{Mode: store.ModeParse, SourceFile: "q.xlsx"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	router := newRouter(t, st)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status endpoint: %d", w.Code)
	}
	var status api.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "ok" || status.RunCount != 1 {
		t.Fatalf("status=%+v, want ok with 1 run", status)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("runs endpoint: %d", w.Code)
	}
	var runsResp struct {
		Runs []store.Run `json:"runs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &runsResp); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runsResp.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runsResp.Runs))
	}
}

// fixtureBytes renders a two-sheet questionnaire workbook in memory.
func fixtureBytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	main := "D. Functional Requirements"
	if err := f.SetSheetName("Sheet1", main); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rows := [][]interface{}{
		{"#", "Requirement", "Response", "Score"},
		{"1", "Does the system support SSO?", "", ""},
		{"2", "Describe your backup process.", "", ""},
	}
	for i, row := range rows {
		addr, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(main, addr, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		t.Fatalf("add sheet: %v", err)
	}
	if err := f.SetCellValue("Instructions", "A1",
		"Please complete every questionnaire sheet in this workbook before the submission deadline."); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("render fixture: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, fileName string, fileBytes []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
