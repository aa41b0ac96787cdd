package extractor

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts trimmed title", func(t *testing.T) {
		t.Parallel()

		page, err := Extract([]byte("<html><head><title>  My Page  </title></head></html>"), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Title != "My Page" {
			t.Errorf("expected title 'My Page', got %q", page.Title)
		}
	})

	t.Run("missing title yields empty string", func(t *testing.T) {
		t.Parallel()

		page, err := Extract([]byte("<html><body><p>hi</p></body></html>"), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Title != "" {
			t.Errorf("expected empty title, got %q", page.Title)
		}
	})

	t.Run("noindex robots tag marks page non-indexable", func(t *testing.T) {
		t.Parallel()

		body := `<html><head><meta name="ROBOTS" content="NOINDEX, follow"></head></html>`
		page, err := Extract([]byte(body), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Indexable {
			t.Error("expected indexable=false for NOINDEX directive")
		}
	})

	t.Run("absent robots tag means indexable", func(t *testing.T) {
		t.Parallel()

		page, err := Extract([]byte("<html><head></head></html>"), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !page.Indexable {
			t.Error("expected indexable=true without robots tag")
		}
	})

	t.Run("follow-only robots tag stays indexable", func(t *testing.T) {
		t.Parallel()

		body := `<html><head><meta name="robots" content="index, follow"></head></html>`
		page, err := Extract([]byte(body), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !page.Indexable {
			t.Error("expected indexable=true for 'index, follow'")
		}
	})

	t.Run("extracts first canonical link", func(t *testing.T) {
		t.Parallel()

		body := `<html><head>
			<link rel="stylesheet" href="/style.css">
			<link rel="canonical" href=" https://a.com/p ">
			<link rel="canonical" href="https://a.com/other">
		</head></html>`
		page, err := Extract([]byte(body), "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.CanonicalHref != "https://a.com/p" {
			t.Errorf("expected first canonical href, got %q", page.CanonicalHref)
		}
	})

	t.Run("resolves relative hrefs against the page URL", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<a href="/landing">Read more</a>
			<a href="next.html">Next</a>
			<a href="https://other.com/abs">Abs</a>
		</body></html>`
		page, err := Extract([]byte(body), "https://a.com/blog/post")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Links) != 3 {
			t.Fatalf("expected 3 links, got %d", len(page.Links))
		}
		if page.Links[0].AbsoluteHref != "https://a.com/landing" {
			t.Errorf("unexpected resolution: %q", page.Links[0].AbsoluteHref)
		}
		if page.Links[1].AbsoluteHref != "https://a.com/blog/next.html" {
			t.Errorf("unexpected resolution: %q", page.Links[1].AbsoluteHref)
		}
	})

	t.Run("skips non-navigational anchors individually", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<a href="javascript:void(0)">js</a>
			<a href="mailto:x@example.com">mail</a>
			<a href="#">top</a>
			<a href="/ok">OK</a>
		</body></html>`
		page, err := Extract([]byte(body), "https://a.com/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(page.Links))
		}
		if page.Links[0].AnchorText != "OK" {
			t.Errorf("wrong surviving link: %+v", page.Links[0])
		}
	})

	t.Run("captures lowercased rel token sets", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<a href="/a" rel="NoFollow Sponsored nofollow">a</a>
			<a href="/b">b</a>
		</body></html>`
		page, err := Extract([]byte(body), "https://a.com/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"nofollow", "sponsored"}
		if !reflect.DeepEqual(page.Links[0].RelTokens, want) {
			t.Errorf("expected rel tokens %v, got %v", want, page.Links[0].RelTokens)
		}
		if page.Links[1].RelTokens != nil {
			t.Errorf("expected nil rel tokens for bare anchor, got %v", page.Links[1].RelTokens)
		}
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		body := `<html><title>Broken<body><a href="/x">x<a href="/y"><div>` // unclosed everything
		page, err := Extract([]byte(body), "https://a.com/")
		if err != nil {
			t.Fatalf("tolerant parse failed: %v", err)
		}
		if len(page.Links) != 2 {
			t.Errorf("expected 2 links from broken markup, got %d", len(page.Links))
		}
	})

	t.Run("identical input yields identical output", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<html><head><title>T</title><link rel="canonical" href="https://a.com/p"></head>
			<body><a href="/x" rel="nofollow">x</a></body></html>`)

		first, err := Extract(body, "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Extract(body, "https://a.com/p")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("extraction is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

func TestCanonicalIsSelf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		canonical string
		pageURL   string
		want      bool
	}{
		{name: "exact match", canonical: "https://a.com/p", pageURL: "https://a.com/p", want: true},
		{name: "trailing slash ignored", canonical: "https://a.com/p/", pageURL: "https://a.com/p", want: true},
		{name: "host case ignored", canonical: "https://A.COM/p", pageURL: "https://a.com/p", want: true},
		{name: "different path", canonical: "https://a.com/other", pageURL: "https://a.com/p", want: false},
		{name: "different host", canonical: "https://b.com/p", pageURL: "https://a.com/p", want: false},
		{name: "different scheme", canonical: "http://a.com/p", pageURL: "https://a.com/p", want: false},
		{name: "empty canonical", canonical: "", pageURL: "https://a.com/p", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CanonicalIsSelf(tt.canonical, tt.pageURL); got != tt.want {
				t.Errorf("CanonicalIsSelf(%q, %q) = %v, want %v", tt.canonical, tt.pageURL, got, tt.want)
			}
		})
	}
}
