package scheduling

import (
	"context"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/services/cart"
)

const (
	// DateLayout is how selected dates are written into the cart.
	DateLayout = "Jan 2, 2006"
	// ISODateLayout is how clients send a selected date.
	ISODateLayout = "2006-01-02"
	slotLayout    = "3:04 PM"
)

// State is the derived state of a scheduling selection.
type State string

const (
	StateDisabled  State = "disabled"
	StateEnabled   State = "enabled"
	StateConfirmed State = "confirmed"
)

// ServiceLookup resolves a service id against the catalog.
type ServiceLookup interface {
	GetByID(id string) (models.ServiceItem, bool)
}

// CartWriter is the cart operation a confirmation performs.
type CartWriter interface {
	AddOrUpdate(ctx context.Context, patch models.CartItemPatch) (models.CartItem, cart.SyncResult, error)
}

// DateOption is one rendered day of the booking window.
type DateOption struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Weekday   string `json:"weekday"`
	Available bool   `json:"available"`
}

// Selection is the user's choice for a service.
type Selection struct {
	ServiceID   string             `json:"serviceId"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	PricingMode models.PricingMode `json:"pricingMode"`
	Note        string             `json:"note,omitempty"`
}

// Confirmation is the outcome of a confirmed selection.
type Confirmation struct {
	State State           `json:"state"`
	Item  models.CartItem `json:"item"`
	Sync  cart.SyncResult `json:"sync"`
}

// Scheduler turns selections into cart entries.
type Scheduler struct {
	catalog    ServiceLookup
	now        func() time.Time
	windowDays int
	slots      []string
}

// NewScheduler creates a scheduler offering windowDays days from today.
// A nil clock uses time.Now.
func NewScheduler(catalog ServiceLookup, windowDays int, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if windowDays <= 0 {
		windowDays = 14
	}
	return &Scheduler{
		catalog:    catalog,
		now:        now,
		windowDays: windowDays,
		slots:      hourlySlots(9, 17),
	}
}

func hourlySlots(fromHour, toHour int) []string {
	var slots []string
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := fromHour; h <= toHour; h++ {
		slots = append(slots, base.Add(time.Duration(h)*time.Hour).Format(slotLayout))
	}
	return slots
}

func (s *Scheduler) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AvailableDates renders the booking window starting today. Weekends are
// included but unavailable.
func (s *Scheduler) AvailableDates() []DateOption {
	start := s.today()
	dates := make([]DateOption, 0, s.windowDays)
	for i := 0; i < s.windowDays; i++ {
		d := start.AddDate(0, 0, i)
		dates = append(dates, DateOption{
			Date:      d.Format(ISODateLayout),
			Label:     d.Format(DateLayout),
			Weekday:   d.Weekday().String()[:3],
			Available: isWeekday(d),
		})
	}
	return dates
}

// TimeSlots lists the offered start times.
func (s *Scheduler) TimeSlots() []string {
	return append([]string{}, s.slots...)
}

// StateOf derives whether booking can proceed for sel.
func (s *Scheduler) StateOf(sel Selection) State {
	if sel.Date == "" || sel.Time == "" {
		return StateDisabled
	}
	return StateEnabled
}

// resolveDate accepts an ISO date or a label as rendered by AvailableDates.
func (s *Scheduler) resolveDate(value string) (time.Time, error) {
	start := s.today()
	d, err := time.ParseInLocation(ISODateLayout, value, start.Location())
	if err != nil {
		d, err = time.ParseInLocation(DateLayout, value, start.Location())
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDateUnavailable, value)
	}
	last := start.AddDate(0, 0, s.windowDays-1)
	if d.Before(start) || d.After(last) || !isWeekday(d) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrDateUnavailable, value)
	}
	return d, nil
}

func (s *Scheduler) offersSlot(slot string) bool {
	for _, candidate := range s.slots {
		if candidate == slot {
			return true
		}
	}
	return false
}

// Confirm writes the selection into the cart keyed by service id, so
// rescheduling a service replaces its previous entry.
func (s *Scheduler) Confirm(ctx context.Context, c CartWriter, sel Selection) (Confirmation, error) {
	if s.StateOf(sel) == StateDisabled {
		return Confirmation{}, ErrIncompleteSelection
	}
	date, err := s.resolveDate(sel.Date)
	if err != nil {
		return Confirmation{}, err
	}
	if !s.offersSlot(sel.Time) {
		return Confirmation{}, fmt.Errorf("%w: %s", ErrUnknownSlot, sel.Time)
	}
	mode := sel.PricingMode
	if mode == "" {
		mode = models.PricingOnce
	}
	if !mode.Valid() {
		return Confirmation{}, ErrInvalidPricingMode
	}
	svc, ok := s.catalog.GetByID(sel.ServiceID)
	if !ok {
		return Confirmation{}, fmt.Errorf("%w: %s", ErrUnknownService, sel.ServiceID)
	}

	price := svc.OncePrice
	if mode == models.PricingHourly {
		price = svc.HourlyPrice
	}
	label := date.Format(DateLayout)
	patch := models.CartItemPatch{
		ID:          svc.ID,
		Title:       &svc.Title,
		Price:       &price,
		Image:       &svc.Image,
		Provider:    &svc.Provider.Name,
		Date:        &label,
		Time:        &sel.Time,
		PricingMode: &mode,
		Note:        &sel.Note,
		OncePrice:   &svc.OncePrice,
		HourlyPrice: &svc.HourlyPrice,
	}

	item, sync, err := c.AddOrUpdate(ctx, patch)
	if err != nil {
		return Confirmation{}, fmt.Errorf("add to cart: %w", err)
	}
	return Confirmation{State: StateConfirmed, Item: item, Sync: sync}, nil
}
