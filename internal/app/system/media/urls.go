package media

import (
	"regexp"
	"strconv"
	"strings"
)

const deliveryHost = "https://res.cloudinary.com/"

// Transform describes an on-the-fly transformation. Empty Crop, Quality,
// Format and Gravity default to fill, auto, auto and auto.
type Transform struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
	Gravity string
}

// ImageURL builds a delivery URL for an image. No network call is made.
func ImageURL(cloudName, publicID string, t Transform) string {
	params := sizeParams(t)
	params = append(params,
		"c_"+orDefault(t.Crop, "fill"),
		"q_"+orDefault(t.Quality, "auto"),
		"f_"+orDefault(t.Format, "auto"),
		"g_"+orDefault(t.Gravity, "auto"),
	)
	return deliveryURL(cloudName, ResourceImage, params, publicID)
}

// VideoURL builds a delivery URL for a video. Crop and Gravity are ignored.
func VideoURL(cloudName, publicID string, t Transform) string {
	params := sizeParams(t)
	params = append(params,
		"q_"+orDefault(t.Quality, "auto"),
		"f_"+orDefault(t.Format, "auto"),
	)
	return deliveryURL(cloudName, ResourceVideo, params, publicID)
}

// Thumbnail is a square crop; size 0 means 300.
func Thumbnail(cloudName, publicID string, size int) string {
	if size <= 0 {
		size = 300
	}
	return ImageURL(cloudName, publicID, Transform{Width: size, Height: size})
}

// Hero is a banner crop; zero sizes mean 1920x1080.
func Hero(cloudName, publicID string, width, height int) string {
	if width <= 0 {
		width = 1920
	}
	if height <= 0 {
		height = 1080
	}
	return ImageURL(cloudName, publicID, Transform{Width: width, Height: height})
}

// Breakpoints used by Responsive.
var Breakpoints = []struct {
	Name  string
	Width int
}{
	{"xs", 320},
	{"sm", 640},
	{"md", 768},
	{"lg", 1024},
	{"xl", 1280},
	{"2xl", 1536},
}

// Responsive returns one width-constrained URL per breakpoint.
func Responsive(cloudName, publicID string) map[string]string {
	out := make(map[string]string, len(Breakpoints))
	for _, bp := range Breakpoints {
		out[bp.Name] = ImageURL(cloudName, publicID, Transform{Width: bp.Width})
	}
	return out
}

// SrcSet renders Responsive as an HTML srcset value.
func SrcSet(cloudName, publicID string) string {
	urls := Responsive(cloudName, publicID)
	parts := make([]string, 0, len(Breakpoints))
	for _, bp := range Breakpoints {
		parts = append(parts, urls[bp.Name]+" "+strconv.Itoa(bp.Width)+"w")
	}
	return strings.Join(parts, ", ")
}

// Asset identifies a stored asset by its delivery URL parts.
type Asset struct {
	CloudName    string
	ResourceType string
	PublicID     string
}

var versionSegment = regexp.MustCompile(`^v[0-9]+$`)

// ParseDeliveryURL recovers the asset behind a plain upload URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/books/cover.jpg.
// URLs from other hosts, or that already carry a transformation, are not
// recognized.
func ParseDeliveryURL(raw string) (Asset, bool) {
	rest, ok := strings.CutPrefix(raw, deliveryHost)
	if !ok {
		return Asset{}, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 4 || parts[2] != "upload" || parts[0] == "" {
		return Asset{}, false
	}
	if parts[1] != ResourceImage && parts[1] != ResourceVideo {
		return Asset{}, false
	}
	path := parts[3:]
	if versionSegment.MatchString(path[0]) {
		path = path[1:]
	}
	if len(path) == 0 || strings.Contains(path[0], ",") {
		return Asset{}, false
	}
	last := len(path) - 1
	if i := strings.LastIndexByte(path[last], '.'); i > 0 {
		path[last] = path[last][:i]
	}
	if path[last] == "" {
		return Asset{}, false
	}
	return Asset{CloudName: parts[0], ResourceType: parts[1], PublicID: strings.Join(path, "/")}, true
}

// Resize returns raw cropped to width x height (0 leaves a side free) when
// it is an image delivery URL. Any other URL is returned unchanged.
func Resize(raw string, width, height int) string {
	a, ok := ParseDeliveryURL(raw)
	if !ok || a.ResourceType != ResourceImage {
		return raw
	}
	switch {
	case width > 0 && width == height:
		return Thumbnail(a.CloudName, a.PublicID, width)
	case width >= 1280:
		return Hero(a.CloudName, a.PublicID, width, height)
	}
	return ImageURL(a.CloudName, a.PublicID, Transform{Width: width, Height: height})
}

// ResponsiveSrcSet is SrcSet for a stored delivery URL, or "" when raw is
// not an image delivery URL.
func ResponsiveSrcSet(raw string) string {
	a, ok := ParseDeliveryURL(raw)
	if !ok || a.ResourceType != ResourceImage {
		return ""
	}
	return SrcSet(a.CloudName, a.PublicID)
}

// Stream returns an auto-quality, auto-format URL for a stored video, or
// raw unchanged when it is not a video delivery URL.
func Stream(raw string) string {
	a, ok := ParseDeliveryURL(raw)
	if !ok || a.ResourceType != ResourceVideo {
		return raw
	}
	return VideoURL(a.CloudName, a.PublicID, Transform{})
}

var youTubeID = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// YouTubeID extracts the 11-character video id from a YouTube URL.
func YouTubeID(videoURL string) (string, bool) {
	m := youTubeID.FindStringSubmatch(videoURL)
	if m == nil || len(m[2]) != 11 {
		return "", false
	}
	return m[2], true
}

// YouTubeThumbnail returns the max-resolution thumbnail for a YouTube URL,
// or "" when the URL has no recognizable id.
func YouTubeThumbnail(videoURL string) string {
	id, ok := YouTubeID(videoURL)
	if !ok {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

// YouTubeEmbed returns the embeddable player URL, or "".
func YouTubeEmbed(videoURL string) string {
	id, ok := YouTubeID(videoURL)
	if !ok {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

func sizeParams(t Transform) []string {
	var params []string
	if t.Width > 0 {
		params = append(params, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		params = append(params, "h_"+strconv.Itoa(t.Height))
	}
	return params
}

func deliveryURL(cloudName, kind string, params []string, publicID string) string {
	return deliveryHost + cloudName + "/" + kind + "/upload/" + strings.Join(params, ",") + "/" + publicID
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
