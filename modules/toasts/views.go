package toasts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Stack renders visible notifications in display order. Each toast is
// offset from the top by its id, so a freed low id reuses its slot.
func Stack(basePath string, items []toast.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range items {
			if err := Item(basePath, n).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Item renders one toast. Pointer enter and leave drive the hover
// endpoints; the close button dismisses it.
func Item(basePath string, n toast.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		url := fmt.Sprintf("%s/%d", basePath, n.ID)
		label := cases.Title(language.English).String(string(n.Category))

		_, err := fmt.Fprintf(w,
			`<div id="toast-%d" class="toast toast-%s" role="status" aria-label="%s" style="top: %drem"`+
				` data-on:mouseenter="@post('%s/hover')" data-on:mouseleave="@delete('%s/hover')">`+
				`<span class="toast-message">%s</span>`+
				`<button type="button" class="toast-close" aria-label="Dismiss" data-on:click="@delete('%s')">&times;</button>`+
				`</div>`,
			n.ID,
			templ.EscapeString(string(n.Category)),
			templ.EscapeString(label),
			offset(n.ID),
			url, url,
			templ.EscapeString(n.Message),
			url,
		)
		return err
	})
}

// Container renders the element the stream patches, prefilled with items.
// It opens the stream once loaded.
func Container(basePath string, items []toast.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="%s" class="toasts" data-signals="{toastCount: %d}" data-init="@get('%s/stream')">`,
			StackSelector[1:], len(items), basePath,
		); err != nil {
			return err
		}
		if err := Stack(basePath, items).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func offset(id int) int {
	return 10 + 7*id
}
