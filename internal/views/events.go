package views

import (
	"context"
	"fmt"
	"io"

	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
)

// EventsView lists upcoming community events from a built-in catalog.
type EventsView struct {
	events []models.Event
}

func NewEventsView() *EventsView {
	return &EventsView{
		events: []models.Event{
			{ID: "e1", Name: "Spring Planting Workshop", Description: "Learn the best techniques for spring planting.", Date: "2025-04-15"},
			{ID: "e2", Name: "Farm-to-Table Dinner Gala", Description: "An evening celebrating local produce and the farmers who grow it.", Date: "2025-05-20"},
			{ID: "e3", Name: "Sustainable Farming Expo", Description: "Explore the latest in sustainable agriculture technology.", Date: "2025-06-10"},
		},
	}
}

func (v *EventsView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	fmt.Fprintln(w, "Community Events")
	fmt.Fprintln(w)

	for _, ev := range v.events {
		fmt.Fprintf(w, "  %s  (%s)\n", ev.Name, ev.Date)
		fmt.Fprintf(w, "    %s\n", ev.Description)
	}

	return nil
}
