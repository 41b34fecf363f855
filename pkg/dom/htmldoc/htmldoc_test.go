package htmldoc

import "testing"

const page = `<!doctype html>
<html lang="en" data-theme="dark">
<head><title>Acme</title></head>
<body class="home">
  <nav class="navbar">
    <button class="hamburger">Menu</button>
    <ul class="nav-menu"><li><a href="#contact">Contact</a></li></ul>
  </nav>
  <section class="hero-slider">
    <div class="slide active">One</div>
    <div class="slide">Two</div>
  </section>
  <form data-contact-form>
    <input name="email" value="a@b.c">
    <div data-form-success style="display:none">Thanks</div>
  </form>
</body>
</html>`

func TestParseString(t *testing.T) {
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if v, _ := doc.HTML().Attr("data-theme"); v != "dark" {
		t.Errorf("html data-theme = %q", v)
	}
	if !doc.Body().HasClass("home") {
		t.Error("body class not copied")
	}
	if got := len(doc.QueryAll(".hero-slider .slide")); got != 2 {
		t.Errorf("Expected 2 slides, got %d", got)
	}
	if title := doc.HTML().Find("title"); title == nil || title.Text() != "Acme" {
		t.Errorf("title not parsed")
	}

	input := doc.HTML().Find(`input[name="email"]`)
	if input == nil || input.Value() != "a@b.c" {
		t.Fatalf("input value not carried over")
	}

	if doc.Query("[data-contact-form] [data-form-success]") == nil {
		t.Error("success element missing")
	}
}
