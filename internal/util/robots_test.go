package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_Disallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		fmt.Fprint(w, "page")
	}))
	defer server.Close()

	checker := NewRobotsChecker("quotevet", 5*time.Second)
	ctx := context.Background()

	if checker.IsAllowed(ctx, server.URL+"/private/paper.html") {
		t.Error("disallowed path reported allowed")
	}
	if !checker.IsAllowed(ctx, server.URL+"/articles/paper.html") {
		t.Error("allowed path reported disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker("quotevet", 5*time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("missing robots.txt should allow")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			hits.Add(1)
		}
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("quotevet", 5*time.Second)
	ctx := context.Background()
	checker.IsAllowed(ctx, server.URL+"/a")
	checker.IsAllowed(ctx, server.URL+"/b")
	checker.IsAllowed(ctx, server.URL+"/c")

	if hits.Load() != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", hits.Load())
	}
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nCrawl-delay: 2\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("quotevet", 5*time.Second)
	_, delay, err := checker.CanFetch(context.Background(), server.URL+"/paper")
	if err != nil {
		t.Fatal(err)
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}
}
