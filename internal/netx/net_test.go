package netx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestUploadToPresignedURL(t *testing.T) {
	photo := []byte("\x89PNG fake photo")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), ts.Client(), ts.URL+"/photos/x?X-Amz-Signature=abc", "image/png", photo)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPut {
			t.Fatalf("method = %q, want PUT", gotMethod)
		}
		if gotCT != "image/png" {
			t.Fatalf("Content-Type = %q, want image/png", gotCT)
		}
		if !bytes.Equal(gotBody, photo) {
			t.Fatalf("body mismatch")
		}
	})

	t.Run("default content type", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
		}))
		defer ts.Close()

		if err := UploadToPresignedURL(context.Background(), nil, ts.URL, "", photo); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotCT != "application/octet-stream" {
			t.Fatalf("Content-Type = %q", gotCT)
		}
	})

	t.Run("non-200 -> error with body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, ts.URL, "", photo)
		if err == nil || !strings.Contains(err.Error(), "SignatureDoesNotMatch") {
			t.Fatalf("expected error with body, got %v", err)
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if err := UploadToPresignedURL(context.Background(), nil, "://bad", "", photo); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestFetchBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("diagram"))
		case "/big":
			_, _ = w.Write(bytes.Repeat([]byte("x"), 64))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	got, err := FetchBytes(context.Background(), ts.Client(), ts.URL+"/ok", 1024)
	if err != nil || string(got) != "diagram" {
		t.Fatalf("FetchBytes ok: %q, %v", got, err)
	}

	if _, err := FetchBytes(context.Background(), nil, ts.URL+"/big", 10); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}

	if _, err := FetchBytes(context.Background(), nil, ts.URL+"/missing", 10); err == nil {
		t.Fatal("expected error for 404")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := FetchBytes(ctx, nil, ts.URL+"/slow", 10); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestCheckHTTPURL(t *testing.T) {
	for _, ok := range []string{"http://cdn.example.com/q1.png", "https://cdn.example.com/a/b.jpg?x=1"} {
		if err := CheckHTTPURL(ok); err != nil {
			t.Fatalf("CheckHTTPURL(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"file:///etc/passwd", "ftp://host/x", "gopher://host", "/relative.png", "https://", "::"} {
		if err := CheckHTTPURL(bad); !errors.Is(err, ErrUnsupportedURL) {
			t.Fatalf("CheckHTTPURL(%q) = %v, want ErrUnsupportedURL", bad, err)
		}
	}
}

func TestFetchBytes_RejectsNonHTTP(t *testing.T) {
	if _, err := FetchBytes(context.Background(), nil, "file:///etc/passwd", 10); !errors.Is(err, ErrUnsupportedURL) {
		t.Fatalf("want ErrUnsupportedURL, got %v", err)
	}
}
