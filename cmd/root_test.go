package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/config"
	"github.com/matheuskafuri/ingester/internal/view"
)

func TestResolveAPIURL(t *testing.T) {
	cfg := &config.Config{APIURL: "http://from-config:8000"}

	tests := []struct {
		name    string
		flag    string
		want    string
		wantErr bool
	}{
		{"config only", "", "http://from-config:8000", false},
		{"flag wins", "https://flag.example", "https://flag.example", false},
		{"bad flag", "ftp://nope", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAPIURL(tt.flag, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveAPIURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIURLPrecedence(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "http://from-env:9000")
	t.Setenv(config.EnvLogLevel, "")

	cfg, err := config.Load(t.TempDir() + "/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := resolveAPIURL("", cfg); got != "http://from-env:9000" {
		t.Errorf("env should beat config, got %q", got)
	}
	if got, _ := resolveAPIURL("http://from-flag", cfg); got != "http://from-flag" {
		t.Errorf("flag should beat env, got %q", got)
	}
}

func TestFlagOverridesInvalidEnvURL(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "not a url")
	t.Setenv(config.EnvLogLevel, "")

	cfg, err := config.Load(t.TempDir() + "/config.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := resolveAPIURL("http://from-flag:8000", cfg)
	if err != nil {
		t.Fatalf("resolveAPIURL with valid flag: %v", err)
	}
	if got != "http://from-flag:8000" {
		t.Errorf("resolveAPIURL = %q, want flag value", got)
	}
	if _, err := resolveAPIURL("", cfg); err == nil {
		t.Error("expected error for invalid env url without a flag")
	}
}

func TestResolveLogLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn"}
	if got := resolveLogLevel("", cfg); got != "warn" {
		t.Errorf("got %q, want config level", got)
	}
	if got := resolveLogLevel("debug", cfg); got != "debug" {
		t.Errorf("got %q, want flag level", got)
	}
}

func TestBuildParams(t *testing.T) {
	cfg := &config.Config{DefaultSort: "title"}

	p, err := buildParams(cfg, "kafka", []string{"go", "db", "go"}, "article", "")
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	want := view.DefaultParams().
		WithQuery("kafka").
		WithTags("db", "go").
		WithType(view.TypeArticle).
		WithSort(view.SortTitle)
	if !p.Equal(want) {
		t.Errorf("buildParams = %+v (tags %v), want %+v", p, p.Tags(), want)
	}

	if _, err := buildParams(cfg, "", nil, "video", ""); err == nil {
		t.Error("expected error for unknown type")
	}
	if _, err := buildParams(cfg, "", nil, "", "size"); err == nil {
		t.Error("expected error for unknown sort")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.input), &out, "Delete? ")
		if err != nil {
			t.Fatalf("confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Delete? " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestDescribeErr(t *testing.T) {
	nf := &archive.NetworkError{Op: "DELETE", URL: "x", StatusCode: http.StatusNotFound}
	if got := describeErr(nf, 9).Error(); got != "link 9 not found" {
		t.Errorf("describeErr(404) = %q", got)
	}

	other := errors.New("boom")
	if got := describeErr(other, 9); got != other {
		t.Errorf("describeErr should pass through other errors, got %v", got)
	}
}

func TestListRecordsAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/links/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"url":"https://a.example","title":"Kafka internals","tags":["streaming"],"created_at":"2024-02-01T10:00:00","resource_type":"article"},
			{"id":2,"url":"https://b.example","title":"Kafka UI","tags":["tools"],"created_at":"2024-03-01T10:00:00","resource_type":"resource"},
			{"id":3,"url":"https://c.example","title":"Postgres","tags":["db"],"created_at":"2024-04-01T10:00:00","resource_type":"article"}
		]`))
	}))
	defer srv.Close()

	client := archive.NewClient(srv.URL)
	p := view.DefaultParams().WithQuery("kafka")

	records, err := listRecords(context.Background(), client, view.NewEngine("en"), p)
	if err != nil {
		t.Fatalf("listRecords: %v", err)
	}
	var ids []int
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]int{2, 1}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeRecords(&buf, []archive.Record{
		{ID: 4, URL: "https://x.example", Title: "X", Tags: []string{"a", "b"}, CreatedAt: "2024-01-15", ResourceType: archive.TypeResource},
		{ID: 5, URL: "https://y.example", CreatedAt: "garbage"},
	}, false)
	if err != nil {
		t.Fatalf("writeRecords: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "TOOL", "15/01/2024", "a,b", "https://y.example", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRecords(&buf, nil, false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "No data found" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	if err := writeRecords(&buf, nil, true); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty JSON = %q, want []", buf.String())
	}
}

func TestWriteRecordsJSON(t *testing.T) {
	in := []archive.Record{{ID: 7, URL: "https://z.example", Title: "Z", Tags: []string{"t"}, ResourceType: archive.TypeArticle}}
	var buf bytes.Buffer
	if err := writeRecords(&buf, in, true); err != nil {
		t.Fatal(err)
	}
	var got []archive.Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	defer SetVersionInfo("dev", "none", "unknown")

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); !strings.Contains(got, "ingester 1.2.3 (commit: abc") {
		t.Errorf("version output = %q", got)
	}
}
