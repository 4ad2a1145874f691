package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puyo/board"
)

// ChainRecord summarizes the passes that followed one lock.
type ChainRecord struct {
	Lock    int
	Passes  int
	Cleared int
	Points  int
}

// ChainHistory is a board.Listener that remembers the most recent chains.
type ChainHistory struct {
	limit   int
	locks   int
	current *ChainRecord
	records []ChainRecord
}

func NewChainHistory(limit int) *ChainHistory {
	return &ChainHistory{limit: limit}
}

func (h *ChainHistory) OnEvent(e board.Event) {
	switch e.Kind {
	case board.EventLock:
		h.finish()
		h.locks++
	case board.EventClear:
		if h.current == nil {
			h.current = &ChainRecord{Lock: h.locks}
		}
		h.current.Passes = e.Pass
		h.current.Cleared += e.Cleared
		h.current.Points += e.Points
	case board.EventSpawn, board.EventGameOver:
		h.finish()
	}
}

func (h *ChainHistory) finish() {
	if h.current == nil {
		return
	}
	h.records = append(h.records, *h.current)
	if len(h.records) > h.limit {
		h.records = h.records[len(h.records)-h.limit:]
	}
	h.current = nil
}

// Records returns finished chains, oldest first.
func (h *ChainHistory) Records() []ChainRecord {
	return append([]ChainRecord(nil), h.records...)
}

func (h *ChainHistory) Render(deltaTime float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 300), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 220), imgui.CondOnce)

	if !imgui.BeginV("Chains", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Locks: %d", h.locks))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ChainTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Lock")
		imgui.TableSetupColumn("Chain")
		imgui.TableSetupColumn("Cleared")
		imgui.TableSetupColumn("Points")
		imgui.TableHeadersRow()

		for i := len(h.records) - 1; i >= 0; i-- {
			r := h.records[i]
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.Lock))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.Passes))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.Cleared))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.Points))
		}

		imgui.EndTable()
	}

	imgui.End()
}
