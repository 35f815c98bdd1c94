package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yallarent/yallarent/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var storeBucket = []byte("store")

// Event topics published on the application bus.
const (
	TopicStoreChanged   = "store:changed"
	TopicBookingCreated = "booking:created"
)

// DefaultNotificationMessage is the payment-reminder template used until an
// admin saves a custom one.
const DefaultNotificationMessage = "عزيزي العميل، نود تذكيركم بوجود مبلغ متبقٍ على إيجار سيارتكم. يرجى التواصل معنا لترتيب عملية السداد. شكراً لتعاونكم."

// oprLogRetention caps the audit log collection length.
const oprLogRetention = 1000

// Store is the single source of truth for the site's collections. Each
// collection is loaded once at startup (from the durable snapshot, or from
// its seed resource on first run) and afterwards mutated only through the
// CRUD methods below, which persist the full collection synchronously.
type Store struct {
	db     *bolt.DB
	seeder *Seeder
	bus    EventBus.Bus
	ids    *idMinter

	mu                  sync.RWMutex
	cars                []domain.Car
	branches            []domain.Branch
	offers              []domain.Offer
	siteConfig          domain.SiteConfig
	bookings            []domain.Booking
	customers           []domain.Customer
	carContent          []domain.CarContent
	operators           []domain.SysOpr
	oprLogs             []domain.SysOprLog
	language            string
	notificationMessage string
}

// Open opens (creating if needed) the bbolt database backing the store.
// Initialize must run before any collection is read.
func Open(path string, seeder *Seeder, bus EventBus.Bus) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(storeBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create store bucket")
	}
	return &Store{
		db:                  db,
		seeder:              seeder,
		bus:                 bus,
		ids:                 &idMinter{},
		language:            domain.LangAr,
		notificationMessage: DefaultNotificationMessage,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize settles every collection: adopt the stored snapshot when
// present and parseable, otherwise discard the corrupted entry and take the
// seed path. Collections load in parallel; Initialize returns only when all
// of them are settled, so readers never observe a partial state.
func (s *Store) Initialize(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loadList(gctx, s, domain.CollectionCars, &s.cars) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionBranches, &s.branches) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionOffers, &s.offers) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionBookings, &s.bookings) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionCustomers, &s.customers) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionCarContent, &s.carContent) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionOperators, &s.operators) })
	g.Go(func() error { return loadList(gctx, s, domain.CollectionOprLogs, &s.oprLogs) })
	g.Go(func() error { return s.loadSiteConfig(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	s.loadAux()
	s.primeIDs()
	return nil
}

// loadList settles one list collection. A stored value that fails to parse
// is treated as a cache miss: the entry is dropped and the seed is fetched.
func loadList[T any](ctx context.Context, s *Store, key string, dst *[]T) error {
	raw, err := s.getRaw(key)
	if err != nil {
		return err
	}
	if raw != nil {
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			s.mu.Lock()
			*dst = out
			s.mu.Unlock()
			return nil
		}
		zap.S().Warnf("discarding corrupted stored data for %q, reseeding", key)
		if err := s.deleteRaw(key); err != nil {
			return err
		}
	}

	data, err := s.seeder.Fetch(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "initialize collection %q", key)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return errors.Wrapf(err, "parse seed for collection %q", key)
	}
	if out == nil {
		out = []T{}
	}
	if err := s.putJSON(key, out); err != nil {
		return err
	}
	s.mu.Lock()
	*dst = out
	s.mu.Unlock()
	return nil
}

func (s *Store) loadSiteConfig(ctx context.Context) error {
	key := domain.CollectionSiteConfig
	raw, err := s.getRaw(key)
	if err != nil {
		return err
	}
	if raw != nil {
		var cfg domain.SiteConfig
		if err := json.Unmarshal(raw, &cfg); err == nil {
			s.mu.Lock()
			s.siteConfig = cfg
			s.mu.Unlock()
			return nil
		}
		zap.S().Warnf("discarding corrupted stored data for %q, reseeding", key)
		if err := s.deleteRaw(key); err != nil {
			return err
		}
	}

	data, err := s.seeder.Fetch(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "initialize collection %q", key)
	}
	var cfg domain.SiteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return errors.Wrapf(err, "parse seed for collection %q", key)
	}
	if err := s.putJSON(key, cfg); err != nil {
		return err
	}
	s.mu.Lock()
	s.siteConfig = cfg
	s.mu.Unlock()
	return nil
}

// loadAux restores the persisted language preference and notification
// template. Defaults are kept in memory only; they are written back on the
// first explicit set.
func (s *Store) loadAux() {
	if raw, err := s.getRaw(domain.KeyLanguage); err == nil && len(raw) > 0 {
		var lang string
		if json.Unmarshal(raw, &lang) == nil && lang != "" {
			s.mu.Lock()
			s.language = lang
			s.mu.Unlock()
		}
	}
	if raw, err := s.getRaw(domain.KeyNotificationMessage); err == nil && len(raw) > 0 {
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			s.mu.Lock()
			s.notificationMessage = msg
			s.mu.Unlock()
		}
	}
}

// primeIDs advances the id minter past every persisted id so that records
// created after a restart cannot collide with loaded ones.
func (s *Store) primeIDs() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cars {
		s.ids.prime(c.ID)
	}
	for _, c := range s.customers {
		s.ids.prime(c.ID)
	}
	for _, c := range s.carContent {
		s.ids.prime(c.ID)
	}
	for _, b := range s.bookings {
		s.ids.prime(cast.ToInt64(strings.TrimPrefix(b.ID, "booking-")))
	}
}

// ---- durable key-value access ----

func (s *Store) getRaw(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(storeBucket).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", key)
	}
	return out, nil
}

func (s *Store) putRaw(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storeBucket).Put([]byte(key), value)
	})
	return errors.Wrapf(err, "persist %q", key)
}

func (s *Store) deleteRaw(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storeBucket).Delete([]byte(key))
	})
	return errors.Wrapf(err, "delete %q", key)
}

func (s *Store) putJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshal %q", key)
	}
	return s.putRaw(key, data)
}

func (s *Store) publish(collection, action string) {
	if s.bus != nil {
		s.bus.Publish(TopicStoreChanged, collection, action)
	}
}

// Snapshot returns the raw stored value of every key, for backups.
func (s *Store) Snapshot() (map[string]jsoniter.RawMessage, error) {
	out := make(map[string]jsoniter.RawMessage)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(storeBucket).ForEach(func(k, v []byte) error {
			out[string(k)] = append(jsoniter.RawMessage(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "snapshot store")
	}
	return out, nil
}

// ---- read-only collections ----

func (s *Store) Branches() []domain.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Branch(nil), s.branches...)
}

func (s *Store) Offers() []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Offer(nil), s.offers...)
}

func (s *Store) SiteConfig() domain.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteConfig
}

// ---- cars ----

func (s *Store) Cars() []domain.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Car(nil), s.cars...)
}

// GetCar looks up a car by id. Consumers render a missing reference as N/A
// rather than treating it as an error.
func (s *Store) GetCar(id int64) (domain.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cars {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Car{}, false
}

func (s *Store) CreateCar(car domain.Car) (domain.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	car.ID = s.ids.Next()
	next := append(append([]domain.Car(nil), s.cars...), car)
	if err := s.putJSON(domain.CollectionCars, next); err != nil {
		return domain.Car{}, err
	}
	s.cars = next
	s.publish(domain.CollectionCars, "create")
	return car, nil
}

// UpdateCar replaces the car with the same id in place. Unknown ids are a
// silent no-op.
func (s *Store) UpdateCar(car domain.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.cars {
		if c.ID == car.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := append([]domain.Car(nil), s.cars...)
	next[idx] = car
	if err := s.putJSON(domain.CollectionCars, next); err != nil {
		return err
	}
	s.cars = next
	s.publish(domain.CollectionCars, "update")
	return nil
}

// DeleteCar removes the car with the given id. Dependent bookings, customers
// and content blocks are left untouched; their car reference dangles and is
// rendered as N/A by consumers.
func (s *Store) DeleteCar(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Car, 0, len(s.cars))
	for _, c := range s.cars {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.cars) {
		return nil
	}
	if err := s.putJSON(domain.CollectionCars, next); err != nil {
		return err
	}
	s.cars = next
	s.publish(domain.CollectionCars, "delete")
	return nil
}

// ---- customers ----

func (s *Store) Customers() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Customer(nil), s.customers...)
}

func (s *Store) CreateCustomer(customer domain.Customer) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer.ID = s.ids.Next()
	next := append(append([]domain.Customer(nil), s.customers...), customer)
	if err := s.putJSON(domain.CollectionCustomers, next); err != nil {
		return domain.Customer{}, err
	}
	s.customers = next
	s.publish(domain.CollectionCustomers, "create")
	return customer, nil
}

func (s *Store) UpdateCustomer(customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.customers {
		if c.ID == customer.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := append([]domain.Customer(nil), s.customers...)
	next[idx] = customer
	if err := s.putJSON(domain.CollectionCustomers, next); err != nil {
		return err
	}
	s.customers = next
	s.publish(domain.CollectionCustomers, "update")
	return nil
}

func (s *Store) DeleteCustomer(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.customers) {
		return nil
	}
	if err := s.putJSON(domain.CollectionCustomers, next); err != nil {
		return err
	}
	s.customers = next
	s.publish(domain.CollectionCustomers, "delete")
	return nil
}

// ---- car content ----

func (s *Store) CarContents() []domain.CarContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CarContent(nil), s.carContent...)
}

func (s *Store) CreateCarContent(content domain.CarContent) (domain.CarContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content.ID = s.ids.Next()
	next := append(append([]domain.CarContent(nil), s.carContent...), content)
	if err := s.putJSON(domain.CollectionCarContent, next); err != nil {
		return domain.CarContent{}, err
	}
	s.carContent = next
	s.publish(domain.CollectionCarContent, "create")
	return content, nil
}

func (s *Store) UpdateCarContent(content domain.CarContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.carContent {
		if c.ID == content.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := append([]domain.CarContent(nil), s.carContent...)
	next[idx] = content
	if err := s.putJSON(domain.CollectionCarContent, next); err != nil {
		return err
	}
	s.carContent = next
	s.publish(domain.CollectionCarContent, "update")
	return nil
}

func (s *Store) DeleteCarContent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.CarContent, 0, len(s.carContent))
	for _, c := range s.carContent {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.carContent) {
		return nil
	}
	if err := s.putJSON(domain.CollectionCarContent, next); err != nil {
		return err
	}
	s.carContent = next
	s.publish(domain.CollectionCarContent, "delete")
	return nil
}

// ---- bookings ----

func (s *Store) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Booking(nil), s.bookings...)
}

// AddBooking creates a booking from the public form draft. The referenced
// car's bilingual name is copied into the record as a point-in-time snapshot
// and never refreshed afterwards; a missing car yields the fixed fallback
// name pair.
func (s *Store) AddBooking(draft domain.BookingDraft) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carName := domain.UnknownCarName
	for _, c := range s.cars {
		if c.ID == draft.CarID {
			carName = c.Name
			break
		}
	}

	booking := domain.Booking{
		ID:              s.ids.NextBookingID(),
		CarID:           draft.CarID,
		CarName:         carName,
		FullName:        draft.FullName,
		PhoneNumber:     draft.PhoneNumber,
		Email:           draft.Email,
		IDNumber:        draft.IDNumber,
		PickupLocation:  draft.PickupLocation,
		PickupTime:      draft.PickupTime,
		DropoffLocation: draft.DropoffLocation,
		DropoffTime:     draft.DropoffTime,
		CurrentLocation: draft.CurrentLocation,
		Notes:           draft.Notes,
		Status:          domain.BookingStatusNew,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	next := append(append([]domain.Booking(nil), s.bookings...), booking)
	if err := s.putJSON(domain.CollectionBookings, next); err != nil {
		return domain.Booking{}, err
	}
	s.bookings = next
	s.publish(domain.CollectionBookings, "create")
	if s.bus != nil {
		s.bus.Publish(TopicBookingCreated, booking)
	}
	return booking, nil
}

// ---- operators ----

func (s *Store) Operators() []domain.SysOpr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SysOpr(nil), s.operators...)
}

func (s *Store) GetOperatorByUsername(username string) (domain.SysOpr, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.operators {
		if o.Username == username {
			return o, true
		}
	}
	return domain.SysOpr{}, false
}

func (s *Store) CreateOperator(opr domain.SysOpr) (domain.SysOpr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opr.ID == 0 {
		opr.ID = s.ids.Next()
	}
	next := append(append([]domain.SysOpr(nil), s.operators...), opr)
	if err := s.putJSON(domain.CollectionOperators, next); err != nil {
		return domain.SysOpr{}, err
	}
	s.operators = next
	s.publish(domain.CollectionOperators, "create")
	return opr, nil
}

func (s *Store) UpdateOperator(opr domain.SysOpr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, o := range s.operators {
		if o.ID == opr.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := append([]domain.SysOpr(nil), s.operators...)
	next[idx] = opr
	if err := s.putJSON(domain.CollectionOperators, next); err != nil {
		return err
	}
	s.operators = next
	s.publish(domain.CollectionOperators, "update")
	return nil
}

// ---- audit log ----

func (s *Store) AppendOprLog(entry domain.SysOprLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]domain.SysOprLog(nil), s.oprLogs...), entry)
	if len(next) > oprLogRetention {
		next = next[len(next)-oprLogRetention:]
	}
	if err := s.putJSON(domain.CollectionOprLogs, next); err != nil {
		return err
	}
	s.oprLogs = next
	return nil
}

func (s *Store) OprLogs() []domain.SysOprLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SysOprLog(nil), s.oprLogs...)
}

// ---- auxiliary keys ----

func (s *Store) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *Store) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putJSON(domain.KeyLanguage, lang); err != nil {
		return err
	}
	s.language = lang
	return nil
}

func (s *Store) NotificationMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationMessage
}

func (s *Store) SetNotificationMessage(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.putJSON(domain.KeyNotificationMessage, msg); err != nil {
		return err
	}
	s.notificationMessage = msg
	return nil
}
