package chiclet

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/core/slicer"
)

// PropertySource reads back persisted visual properties.
type PropertySource interface {
	selection.Persister
	Objects(ctx context.Context) (dataview.Objects, error)
}

// Service loads data views, layers persisted properties over them, and
// converts them into data points.
type Service struct {
	source   dataview.Source
	store    selection.Store
	props    PropertySource
	resolver slicer.Resolver
	log      zerolog.Logger
}

// NewService creates a Service.
func NewService(
	source dataview.Source,
	store selection.Store,
	props PropertySource,
	resolver slicer.Resolver,
	log zerolog.Logger,
) *Service {
	return &Service{
		source:   source,
		store:    store,
		props:    props,
		resolver: resolver,
		log:      log,
	}
}

// Store returns the host selection store.
func (s *Service) Store() selection.Store {
	return s.store
}

// Load reads the first segment of the data view.
func (s *Service) Load(ctx context.Context) (*dataview.DataView, error) {
	view, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.withProperties(ctx, view), nil
}

// LoadMore extends the data view by one segment.
func (s *Service) LoadMore(ctx context.Context) (*dataview.DataView, error) {
	view, err := s.source.LoadMore(ctx)
	if err != nil {
		return nil, err
	}
	return s.withProperties(ctx, view), nil
}

// withProperties layers persisted properties over the file's metadata.
// Read failures are logged and the file's own metadata is used.
func (s *Service) withProperties(ctx context.Context, view *dataview.DataView) *dataview.DataView {
	objects, err := s.props.Objects(ctx)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("read persisted properties")
		return view
	}
	for object, props := range objects {
		view = view.WithObjects(object, props)
	}
	return view
}

// Convert runs the converter. A view that cannot be converted yields a nil
// result and no error: callers render nothing.
func (s *Service) Convert(view *dataview.DataView, searchText string) (*slicer.Result, error) {
	res, err := slicer.Convert(view, searchText, s.resolver)
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, slicer.ErrNoData), errors.Is(err, slicer.ErrMissingIdentity):
		s.log.Debug().Err(err).Msg("nothing to render")
		return nil, nil
	default:
		return nil, err
	}
}

// SearchText returns the persisted search text carried by view.
func SearchText(view *dataview.DataView) string {
	if view == nil {
		return ""
	}
	v, ok := view.Metadata.Objects.Get(dataview.SearchTextProperty)
	if !ok {
		return ""
	}
	text, _ := v.(string)
	return text
}

// SaveSearch persists the search text.
func (s *Service) SaveSearch(ctx context.Context, text string) {
	s.Persist(ctx, dataview.SearchTextProperty.Object, map[string]any{
		dataview.SearchTextProperty.Property: text,
	})
}

// SelectionProperties returns the general object properties recording ids
// as the saved selection of view. The filter is only included when the
// category column has identity fields, since a filter without them makes the
// view unconvertible.
func SelectionProperties(view *dataview.DataView, ids []identity.ID) map[string]any {
	return selection.SelectionProperties(ids, hasIdentityFields(view))
}

func hasIdentityFields(view *dataview.DataView) bool {
	cat := view.Category()
	return cat != nil && len(cat.IdentityFields) > 0
}

// Persist writes properties back to the host. Failures are logged only.
func (s *Service) Persist(ctx context.Context, object string, props map[string]any) {
	if err := s.props.Persist(ctx, object, props); err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("object", object).Msg("persist properties failed")
	}
}

// SaveSelection persists the acknowledged selection for view.
func (s *Service) SaveSelection(ctx context.Context, view *dataview.DataView, ids []identity.ID) {
	selection.SaveSelection(ctx, s.props, s.log, ids, hasIdentityFields(view))
}
