package media

import "testing"

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		t    Transform
		want string
	}{
		{"defaults", Transform{}, "https://res.cloudinary.com/demo/image/upload/c_fill,q_auto,f_auto,g_auto/books/cover"},
		{"sized", Transform{Width: 300, Height: 200}, "https://res.cloudinary.com/demo/image/upload/w_300,h_200,c_fill,q_auto,f_auto,g_auto/books/cover"},
		{"overrides", Transform{Width: 50, Crop: "fit", Quality: "80", Format: "webp", Gravity: "face"}, "https://res.cloudinary.com/demo/image/upload/w_50,c_fit,q_80,f_webp,g_face/books/cover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL("demo", "books/cover", tt.t); got != tt.want {
				t.Errorf("ImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	got := VideoURL("demo", "videos/talk", Transform{Width: 640, Crop: "fit", Gravity: "face"})
	want := "https://res.cloudinary.com/demo/video/upload/w_640,q_auto,f_auto/videos/talk"
	if got != want {
		t.Errorf("VideoURL() = %q, want %q", got, want)
	}
}

func TestHelpers(t *testing.T) {
	if got, want := Thumbnail("demo", "p", 0), "https://res.cloudinary.com/demo/image/upload/w_300,h_300,c_fill,q_auto,f_auto,g_auto/p"; got != want {
		t.Errorf("Thumbnail() = %q, want %q", got, want)
	}
	if got, want := Hero("demo", "p", 0, 0), "https://res.cloudinary.com/demo/image/upload/w_1920,h_1080,c_fill,q_auto,f_auto,g_auto/p"; got != want {
		t.Errorf("Hero() = %q, want %q", got, want)
	}

	r := Responsive("demo", "p")
	if len(r) != 6 {
		t.Fatalf("Responsive() has %d entries, want 6", len(r))
	}
	if got, want := r["2xl"], "https://res.cloudinary.com/demo/image/upload/w_1536,c_fill,q_auto,f_auto,g_auto/p"; got != want {
		t.Errorf("Responsive()[2xl] = %q, want %q", got, want)
	}
}

func TestYouTube(t *testing.T) {
	tests := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
	}
	for _, tt := range tests {
		id, ok := YouTubeID(tt.url)
		if id != tt.id || ok != tt.ok {
			t.Errorf("YouTubeID(%q) = %q, %v; want %q, %v", tt.url, id, ok, tt.id, tt.ok)
		}
	}

	if got, want := YouTubeThumbnail("https://youtu.be/dQw4w9WgXcQ"), "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"; got != want {
		t.Errorf("YouTubeThumbnail() = %q, want %q", got, want)
	}
	if got := YouTubeThumbnail("not a url"); got != "" {
		t.Errorf("YouTubeThumbnail() = %q, want empty", got)
	}
}

func TestParseDeliveryURL(t *testing.T) {
	tests := []struct {
		raw  string
		want Asset
		ok   bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/books/cover.jpg", Asset{"demo", "image", "books/cover"}, true},
		{"https://res.cloudinary.com/demo/image/upload/cover.png", Asset{"demo", "image", "cover"}, true},
		{"https://res.cloudinary.com/demo/video/upload/v9/videos/talk.mp4", Asset{"demo", "video", "videos/talk"}, true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_300/books/cover.jpg", Asset{}, false},
		{"https://res.cloudinary.com/demo/raw/upload/v1/doc.pdf", Asset{}, false},
		{"https://res.cloudinary.com/demo/image/upload/v1712345", Asset{}, false},
		{"https://img.youtube.com/vi/abc/maxresdefault.jpg", Asset{}, false},
		{"", Asset{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDeliveryURL(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDeliveryURL(%q) = %+v, %v; want %+v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResizeStoredURLs(t *testing.T) {
	cover := "https://res.cloudinary.com/demo/image/upload/v1712345/books/cover.jpg"
	tests := []struct {
		name          string
		raw           string
		width, height int
		want          string
	}{
		{"card", cover, 400, 600, ImageURL("demo", "books/cover", Transform{Width: 400, Height: 600})},
		{"square", cover, 96, 96, Thumbnail("demo", "books/cover", 96)},
		{"banner", cover, 1600, 900, Hero("demo", "books/cover", 1600, 900)},
		{"foreign url untouched", "https://example.com/a.jpg", 400, 600, "https://example.com/a.jpg"},
		{"video url untouched", "https://res.cloudinary.com/demo/video/upload/v1/videos/talk.mp4", 400, 0, "https://res.cloudinary.com/demo/video/upload/v1/videos/talk.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resize(tt.raw, tt.width, tt.height); got != tt.want {
				t.Errorf("Resize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponsiveSrcSetAndStream(t *testing.T) {
	cover := "https://res.cloudinary.com/demo/image/upload/v1/blogs/hero.png"
	if got, want := ResponsiveSrcSet(cover), SrcSet("demo", "blogs/hero"); got != want {
		t.Errorf("ResponsiveSrcSet() = %q, want %q", got, want)
	}
	if got := ResponsiveSrcSet("https://example.com/a.png"); got != "" {
		t.Errorf("ResponsiveSrcSet(foreign) = %q, want empty", got)
	}

	talk := "https://res.cloudinary.com/demo/video/upload/v3/videos/talk.mp4"
	if got, want := Stream(talk), VideoURL("demo", "videos/talk", Transform{}); got != want {
		t.Errorf("Stream() = %q, want %q", got, want)
	}
	if got := Stream("https://youtu.be/dQw4w9WgXcQ"); got != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("Stream(youtube) = %q", got)
	}
}
