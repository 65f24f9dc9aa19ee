// Package ui contains the Bubble Tea program that powers the item picker.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, search input, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by a focused function (key presses, window
//     resizes, debounce timers, render steps, layout retries).
//   - Navigation helpers (internal/ui/navigation.go) manage the grid cursor,
//     tab cycling, and the hand-off between the search field and the grid.
//     Search input helpers (internal/ui/input.go) keep all text entry concerns
//     isolated from the Bubble Tea event loop.
//
// State ownership:
//   - Category, search, and filtering state lives in internal/picker.Viewer.
//   - Grid materialization and layout live in internal/grid: the chunked
//     Renderer for fixed-size items, the masonry Packer plus spatial Index for
//     variable-size items. Both are driven cooperatively from Update via
//     renderStepMsg, so a large dataset never blocks input handling.
//   - Item activation runs through internal/ui/command, which wraps the
//     selection into a tea.Cmd and emits trace logs around it.
//
// Timers are issued as tea.Tick commands carrying generation tokens (search
// debounce, deferred layout retry, delayed focus restore). A stale token is
// discarded when its message arrives, so superseded work never runs.
package ui
