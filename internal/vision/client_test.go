package vision

import "testing"

func TestMediaType(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"1000-scoreboard.png", "image/png"},
		{"shot.JPG", "image/jpeg"},
		{"shot.jpeg", "image/jpeg"},
		{"anim.webp", "image/webp"},
		{"anim.GIF", "image/gif"},
	}
	for _, c := range cases {
		got, err := MediaType(c.path)
		if err != nil {
			t.Errorf("MediaType(%q): %v", c.path, err)
			continue
		}
		if got != c.want {
			t.Errorf("MediaType(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestMediaTypeRejectsUnknown(t *testing.T) {
	for _, path := range []string{"notes.txt", "archive.tar.gz", "noext"} {
		if _, err := MediaType(path); err == nil {
			t.Errorf("MediaType(%q) should fail", path)
		}
	}
}
