package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/chiclet/internal/chiclet"
	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/data/watch"
)

// viewLoadedMsg is sent when a data view request completes.
type viewLoadedMsg struct {
	view *dataview.DataView
	more bool
	err  error
}

// selectionResolvedMsg carries the host's answer to a selection request.
type selectionResolvedMsg struct {
	res selection.Resolution
}

// dataChangedMsg is sent when the watched data file changes on disk.
type dataChangedMsg struct {
	event watch.Event
}

func loadView(ctx context.Context, svc *chiclet.Service) tea.Cmd {
	return func() tea.Msg {
		view, err := svc.Load(ctx)
		return viewLoadedMsg{view: view, err: err}
	}
}

func loadMoreView(ctx context.Context, svc *chiclet.Service) tea.Cmd {
	return func() tea.Msg {
		view, err := svc.LoadMore(ctx)
		return viewLoadedMsg{view: view, more: true, err: err}
	}
}

// executeSelection hands req to the host store. Commands run concurrently;
// the executor keeps the store in issue order and the machine discards
// resolutions that arrive out of order.
func executeSelection(ctx context.Context, exec *selection.Executor, req selection.Request) tea.Cmd {
	return func() tea.Msg {
		return selectionResolvedMsg{res: exec.Execute(ctx, req)}
	}
}

// persistProperties writes properties in the background. Failures are logged
// by the service and never reach the UI.
func persistProperties(ctx context.Context, svc *chiclet.Service, object string, props map[string]any) tea.Cmd {
	return func() tea.Msg {
		svc.Persist(ctx, object, props)
		return nil
	}
}

// waitForChange blocks on the next data file change. It yields nil once the
// watcher is closed, ending the loop.
func waitForChange(ch <-chan watch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return dataChangedMsg{event: event}
	}
}
