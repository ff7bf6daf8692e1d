package mapview_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	sessiondto "mapty/internal/modules/session/dto"
	"mapty/internal/ui/views/mapview"
)

type fakeSurface struct {
	lat, lng float64
	centered bool
	zoom     int
	pins     []sessiondto.PinOutput
	clicks   [][2]float64
	listen   bool
}

func (f *fakeSurface) Center() (float64, float64, bool) { return f.lat, f.lng, f.centered }
func (f *fakeSurface) Zoom() int                         { return f.zoom }
func (f *fakeSurface) SetZoom(zoom int)                  { f.zoom = zoom }
func (f *fakeSurface) Recenter(lat, lng float64)         { f.lat, f.lng = lat, lng }
func (f *fakeSurface) Pins() []sessiondto.PinOutput      { return f.pins }

func (f *fakeSurface) Click(lat, lng float64) bool {
	if !f.listen {
		return false
	}
	f.clicks = append(f.clicks, [2]float64{lat, lng})
	return true
}

func readyMap(surface *fakeSurface) mapview.Model {
	m := mapview.New(surface)
	m.SetSize(40, 20)
	m.SetOrigin(0, 1)
	m.SetLocated(false)
	return m
}

func TestLocatingShowsSpinnerUntilCentered(t *testing.T) {
	t.Parallel()
	m := mapview.New(&fakeSurface{})
	m.SetSize(40, 10)
	require.Contains(t, m.View(), "Locating")

	m.SetLocated(true)
	require.Contains(t, m.View(), "Could not access your location.")
	_, _, ok := m.Cursor()
	require.False(t, ok)
}

func TestEnterClicksUnderCursor(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{lat: 51.505, lng: -0.09, centered: true, zoom: 13, listen: true}
	m := readyMap(surface)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd().(mapview.ClickedMsg)
	require.True(t, msg.Delivered)
	require.InDelta(t, 51.505, msg.Lat, 0.01)
	require.InDelta(t, -0.09, msg.Lng, 0.01)
	require.Len(t, surface.clicks, 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	moved := cmd().(mapview.ClickedMsg)
	require.Greater(t, moved.Lng, msg.Lng, "cursor moved east")
}

func TestMouseClickTranslatesOrigin(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{lat: 0, lng: 0, centered: true, zoom: 3}
	m := readyMap(surface)

	_, cmd := m.Update(tea.MouseMsg{X: 20, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Nil(t, cmd, "row above the map is outside the view")

	_, cmd = m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	require.Nil(t, cmd)

	_, cmd = m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.NotNil(t, cmd)
	msg := cmd().(mapview.ClickedMsg)
	require.False(t, msg.Delivered, "nobody subscribed")
	require.Less(t, msg.Lng, 0.0)
	require.Greater(t, msg.Lat, 0.0)
}

func TestZoomKeys(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{centered: true, zoom: 10}
	m := readyMap(surface)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	require.Equal(t, 11, surface.zoom)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	require.Equal(t, 10, surface.zoom)
}

func TestPanRecenters(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{lat: 10, lng: 10, centered: true, zoom: 5}
	m := readyMap(surface)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	require.Greater(t, surface.lng, 10.0)
}

func TestPinsAreDrawn(t *testing.T) {
	t.Parallel()
	surface := &fakeSurface{lat: 51.5, lng: -0.1, centered: true, zoom: 13, pins: []sessiondto.PinOutput{
		{ID: "pin-1", Lat: 51.5, Lng: -0.1, Kind: "position"},
		{ID: "pin-2", Lat: 51.51, Lng: -0.09, Kind: "running"},
		{ID: "pin-3", Lat: -33.9, Lng: 151.2, Kind: "cycling"},
	}}
	m := readyMap(surface)
	view := m.View()
	require.Contains(t, view, "R")
	require.NotContains(t, view, "C", "off-screen pins are skipped")
	require.Len(t, strings.Split(view, "\n"), 20)
	require.Contains(t, m.CursorLabel(), "z13")
}
