package images

import (
	"reflect"
	"testing"
)

func TestExtractInline(t *testing.T) {
	got := Extract(`Intro text.

![Architecture diagram](./media/architecture.png)

More text.`)
	want := []string{"./media/architecture.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractInlineWithTitle(t *testing.T) {
	got := Extract(`![Diagram](media/flow.svg "Data flow")`)
	want := []string{"media/flow.svg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractImageBlockDirective(t *testing.T) {
	got := Extract(`:::image type="content" source="media/topology.png" alt-text="Topology":::`)
	want := []string{"media/topology.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractImageBlockUnquotedSource(t *testing.T) {
	got := Extract(`:::image type=content source=media/plain.png alt-text=x:::`)
	want := []string{"media/plain.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractHTMLImg(t *testing.T) {
	got := Extract(`Some markdown.

<img src="media/embedded.jpeg" alt="embedded">
`)
	want := []string{"media/embedded.jpeg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractSourceSrcsetFirstCandidate(t *testing.T) {
	got := Extract(`<picture>
<source srcset="media/large.webp 2x, media/small.webp 1x" type="image/webp">
</picture>`)
	want := []string{"media/large.webp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractReferenceStyle(t *testing.T) {
	got := Extract(`See the diagram: ![Overview][Arch-Diagram]

Closing remarks.

[arch-diagram]: media/overview.png
`)
	want := []string{"media/overview.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractUnknownReferenceLabelIgnored(t *testing.T) {
	got := Extract(`![Missing][nowhere]`)
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestExtractDeduplicatesAcrossConventions(t *testing.T) {
	got := Extract(`![inline](media/shared.png)

![ref][d]

[d]: media/shared.png
`)
	want := []string{"media/shared.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want single entry", got)
	}
}

func TestExtractPrecedenceOrder(t *testing.T) {
	got := Extract(`<img src="media/html.png">

![inline](media/inline.png)

:::image source="media/block.png" alt-text="b":::
`)
	// Inline first, then block directives, then raw HTML, regardless of
	// position in the document.
	want := []string{"media/inline.png", "media/block.png", "media/html.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractExcludesThumbnailsAndIcons(t *testing.T) {
	got := Extract(`![t](browse/thumbs/card.png)
![i](media/icons/azure.svg)
![s](media/social_image.png)
![keep](media/real-diagram.png)
`)
	want := []string{"media/real-diagram.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractEmptyReturnsNonNil(t *testing.T) {
	if got := Extract("no images at all"); got == nil || len(got) != 0 {
		t.Errorf("Extract() = %v, want empty non-nil slice", got)
	}
}
