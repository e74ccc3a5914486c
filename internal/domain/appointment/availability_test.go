package appointment

import (
	"reflect"
	"testing"
	"time"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

func window(t *testing.T, start, end string) Window {
	t.Helper()

	s, err := ParseClock(start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	e, err := ParseClock(end)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	return Window{Start: s, End: e}
}

func TestComputeAvailableSlotsMorningNoReservations(t *testing.T) {
	// seg 09:00–12:00, serviço de 60min, agenda vazia
	slots := ComputeAvailableSlots([]Window{window(t, "09:00", "12:00")}, nil, 60)

	want := []string{"09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsSkipsReservedInterval(t *testing.T) {
	slots := ComputeAvailableSlots(
		[]Window{window(t, "09:00", "12:00")},
		[]Interval{{Start: 600, End: 660}}, // 10:00–11:00
		60,
	)

	want := []string{"09:00", "11:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsSlotMustFitWindow(t *testing.T) {
	// 45min em 09:00–10:00: só 09:00 cabe (09:45 terminaria 10:30)
	slots := ComputeAvailableSlots([]Window{window(t, "09:00", "10:00")}, nil, 45)

	want := []string{"09:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsNoWindowsMeansDayOff(t *testing.T) {
	slots := ComputeAvailableSlots(nil, nil, 60)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestComputeAvailableSlotsDurationLargerThanEveryWindow(t *testing.T) {
	slots := ComputeAvailableSlots([]Window{window(t, "09:00", "10:00")}, nil, 90)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestComputeAvailableSlotsNeverSpansWindows(t *testing.T) {
	// janelas contíguas 09:00–10:00 e 10:00–11:00 com 90min: nada cabe
	windows := []Window{
		window(t, "09:00", "10:00"),
		window(t, "10:00", "11:00"),
	}

	slots := ComputeAvailableSlots(windows, nil, 90)
	if len(slots) != 0 {
		t.Fatalf("slot atravessou janelas: %v", slots)
	}
}

func TestComputeAvailableSlotsSplitShiftUnionSorted(t *testing.T) {
	// turno da tarde declarado antes do da manhã: saída continua ordenada
	windows := []Window{
		window(t, "14:00", "16:00"),
		window(t, "09:00", "11:00"),
	}

	slots := ComputeAvailableSlots(windows, nil, 60)

	want := []string{"09:00", "10:00", "14:00", "15:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsDeduplicatesAcrossWindows(t *testing.T) {
	// janela do barbeiro e janela da barbearia cobrindo o mesmo horário
	windows := []Window{
		window(t, "09:00", "11:00"),
		window(t, "09:00", "11:00"),
	}

	slots := ComputeAvailableSlots(windows, nil, 60)

	want := []string{"09:00", "10:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestComputeAvailableSlotsFallbackDuration(t *testing.T) {
	for _, slotMinutes := range []int{0, -15} {
		slots := ComputeAvailableSlots([]Window{window(t, "09:00", "12:00")}, nil, slotMinutes)

		want := []string{"09:00", "10:00", "11:00"}
		if !reflect.DeepEqual(slots, want) {
			t.Fatalf("slotMinutes=%d: expected %v, got %v", slotMinutes, want, slots)
		}
	}
}

func TestComputeAvailableSlotsIdempotent(t *testing.T) {
	windows := []Window{window(t, "08:00", "18:00")}
	reserved := []Interval{{Start: 540, End: 570}, {Start: 720, End: 780}}

	first := ComputeAvailableSlots(windows, reserved, 30)
	second := ComputeAvailableSlots(windows, reserved, 30)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input, different output: %v vs %v", first, second)
	}
}

func TestComputeAvailableSlotsMonotonicUnderNewReservations(t *testing.T) {
	windows := []Window{window(t, "08:00", "18:00")}
	reserved := []Interval{{Start: 540, End: 600}}

	before := ComputeAvailableSlots(windows, reserved, 30)

	more := append(reserved, Interval{Start: 630, End: 700})
	after := ComputeAvailableSlots(windows, more, 30)

	if len(after) > len(before) {
		t.Fatalf("reserva nova aumentou slots: %d → %d", len(before), len(after))
	}

	beforeSet := make(map[string]bool, len(before))
	for _, s := range before {
		beforeSet[s] = true
	}
	for _, s := range after {
		if !beforeSet[s] {
			t.Fatalf("slot %s surgiu após nova reserva", s)
		}
	}
}

func TestComputeAvailableSlotsContainmentAndNoOverlap(t *testing.T) {
	windows := []Window{
		window(t, "09:00", "12:30"),
		window(t, "14:00", "17:45"),
	}
	reserved := []Interval{
		{Start: 585, End: 630},  // 09:45–10:30
		{Start: 900, End: 1005}, // 15:00–16:45
	}
	const slotMinutes = 45

	for _, s := range ComputeAvailableSlots(windows, reserved, slotMinutes) {
		start, err := ParseClock(s)
		if err != nil {
			t.Fatalf("slot malformado %q: %v", s, err)
		}
		slot := Interval{Start: start, End: start + slotMinutes}

		contained := false
		for _, w := range windows {
			if slot.Start >= w.Start && slot.End <= w.End {
				contained = true
				break
			}
		}
		if !contained {
			t.Fatalf("slot %s fora de qualquer janela", s)
		}

		for _, r := range reserved {
			if slot.Overlaps(r) {
				t.Fatalf("slot %s sobrepõe reserva [%d,%d)", s, r.Start, r.End)
			}
		}
	}
}

func TestReservedIntervalsSkipsCanceled(t *testing.T) {
	loc := time.UTC
	dayStart := time.Date(2030, 1, 7, 0, 0, 0, 0, loc)

	at := func(h, m int) time.Time {
		return time.Date(2030, 1, 7, h, m, 0, 0, loc)
	}

	apps := []models.Appointment{
		{StartTime: at(9, 0), EndTime: at(10, 0), Status: "canceled"},
		{StartTime: at(10, 0), EndTime: at(11, 0), Status: "pending"},
		{StartTime: at(11, 0), EndTime: at(12, 0), Status: "cancelled"}, // grafia legada
		{StartTime: at(13, 0), EndTime: at(14, 0), Status: "confirmed"},
	}

	got := ReservedIntervals(apps, dayStart)

	want := []Interval{
		{Start: 600, End: 660},
		{Start: 780, End: 840},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCanceledIntervalDoesNotSuppressSlot(t *testing.T) {
	loc := time.UTC
	dayStart := time.Date(2030, 1, 7, 0, 0, 0, 0, loc)

	apps := []models.Appointment{
		{
			StartTime: time.Date(2030, 1, 7, 10, 0, 0, 0, loc),
			EndTime:   time.Date(2030, 1, 7, 11, 0, 0, 0, loc),
			Status:    "canceled",
		},
	}

	slots := ComputeAvailableSlots(
		[]Window{window(t, "09:00", "12:00")},
		ReservedIntervals(apps, dayStart),
		60,
	)

	want := []string{"09:00", "10:00", "11:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("cancelado suprimiu slot: expected %v, got %v", want, slots)
	}
}

func TestParseWindowsRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		rows []models.WorkingHourWindow
	}{
		{"malformed start", []models.WorkingHourWindow{{StartTime: "9h00", EndTime: "12:00"}}},
		{"malformed end", []models.WorkingHourWindow{{StartTime: "09:00", EndTime: "25:00"}}},
		{"inverted", []models.WorkingHourWindow{{StartTime: "12:00", EndTime: "09:00"}}},
		{"empty window", []models.WorkingHourWindow{{StartTime: "09:00", EndTime: "09:00"}}},
	}

	for _, tc := range cases {
		if _, err := ParseWindows(tc.rows); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestParseWindowsTruncatesSeconds(t *testing.T) {
	rows := []models.WorkingHourWindow{{StartTime: "09:00:30", EndTime: "12:00:00"}}

	windows, err := ParseWindows(rows)
	if err != nil {
		t.Fatalf("ParseWindows: %v", err)
	}

	if windows[0].Start != 540 || windows[0].End != 720 {
		t.Fatalf("unexpected window %+v", windows[0])
	}
}
