package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apperrors "github.com/agrihub/storefront/internal/errors"
	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/store"
	"github.com/go-playground/validator/v10"
)

// ServicesView lists farm services. The catalog starts from a built-in set
// and grows locally when a farmer or admin adds an entry; there is no
// backend endpoint for services yet.
type ServicesView struct {
	sessions  *store.SessionStore
	logger    *slog.Logger
	validator *validator.Validate
	services  []models.Service
}

func NewServicesView(sessions *store.SessionStore, logger *slog.Logger) *ServicesView {
	return &ServicesView{
		sessions:  sessions,
		logger:    logger,
		validator: validator.New(),
		services: []models.Service{
			{ID: "s1", Name: "Tractor Rental", Description: "Rent a tractor for your plowing and planting needs.", Price: 75.00},
			{ID: "s2", Name: "Soil Testing", Description: "Professional soil analysis to optimize your crop yield.", Price: 120.00},
			{ID: "s3", Name: "Crop Spraying", Description: "Aerial and ground crop spraying services.", Price: 200.00},
		},
	}
}

func (v *ServicesView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	fmt.Fprintln(w, "Farm Services")
	fmt.Fprintln(w)

	for _, svc := range v.services {
		fmt.Fprintf(w, "  %s  $%.2f\n", svc.Name, svc.Price)
		fmt.Fprintf(w, "    %s\n", svc.Description)
	}

	if sess := v.sessions.Current(); sess != nil && sess.CanManageProducts() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Offer a service with: service add <name> <price> <description>")
	}

	return nil
}

// AddService appends a locally offered service. Only farmers and admins
// can offer services.
func (v *ServicesView) AddService(ctx context.Context, w io.Writer, req *models.AddServiceRequest) error {

	sess := v.sessions.Current()
	if sess == nil || !sess.CanManageProducts() {
		return fail(w, apperrors.ForbiddenError("only farmers can offer services"))
	}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	svc := models.Service{
		ID:          fmt.Sprintf("s%d", len(v.services)+1),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ProviderID:  sess.ID,
	}

	v.services = append(v.services, svc)

	v.logger.Info("service added", slog.String("service", svc.Name), slog.String("provider", sess.Username))

	fmt.Fprintf(w, "Service %q added.\n", svc.Name)

	return nil
}

// Services returns a copy of the current catalog.
func (v *ServicesView) Services() []models.Service {
	out := make([]models.Service, len(v.services))
	copy(out, v.services)

	return out
}
