package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cwm/hypo"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
	ErrFactory     = errors.New("factory error")
)

// IDummy is the interface most fixtures are bound to.
type IDummy interface {
	SetValue(value int)
	GetValue() int
}

// INotDummy is an interface Dummy does not implement.
type INotDummy interface {
	NotDummy() string
}

// Dummy implements IDummy.
type Dummy struct {
	ID    string
	value int
}

func NewDummy() *Dummy {
	return &Dummy{ID: uuid.NewString()}
}

func (d *Dummy) SetValue(value int) { d.value = value }
func (d *Dummy) GetValue() int      { return d.value }

// DumDum is a second IDummy implementation.
type DumDum struct {
	Dummy
}

func NewDumDum() *DumDum {
	return &DumDum{Dummy: Dummy{ID: uuid.NewString()}}
}

// ImplementsBoth implements IDummy and INotDummy.
type ImplementsBoth struct {
	Dummy
}

func NewImplementsBoth() *ImplementsBoth {
	return &ImplementsBoth{Dummy: Dummy{ID: uuid.NewString()}}
}

func (b *ImplementsBoth) NotDummy() string { return "both" }

// NeedsDummy depends on an IDummy and a plain value.
type NeedsDummy struct {
	Dummy     IDummy
	SomeValue int
}

// NeedsDummyParams is the parameter object of NewNeedsDummy.
type NeedsDummyParams struct {
	hypo.In

	Dummy     IDummy
	SomeValue int `hypo:"someValue" default:"1"`
}

func NewNeedsDummy(p NeedsDummyParams) *NeedsDummy {
	return &NeedsDummy{Dummy: p.Dummy, SomeValue: p.SomeValue}
}

// NewNeedsDummyPositional takes positional parameters; register it with
// the names "dummy" and "someValue".
func NewNeedsDummyPositional(dummy IDummy, someValue int) *NeedsDummy {
	return &NeedsDummy{Dummy: dummy, SomeValue: someValue}
}

// NeedsDummyStruct is registered as a struct type and filled by field.
type NeedsDummyStruct struct {
	Dummy     IDummy
	SomeValue int    `default:"7"`
	Label     string `hypo:"label" default:"unnamed"`
	Skipped   IDummy `inject:"-"`
}

// CycleA and CycleB depend on each other.
type CycleA struct{ B *CycleB }
type CycleB struct{ A *CycleA }

func NewCycleA(b *CycleB) *CycleA { return &CycleA{B: b} }
func NewCycleB(a *CycleA) *CycleB { return &CycleB{A: a} }

// SelfDependent depends on itself.
type SelfDependent struct{ Self *SelfDependent }

func NewSelfDependent(s *SelfDependent) *SelfDependent { return &SelfDependent{Self: s} }

// Logger is a test logger interface
type Logger interface {
	Log(msg string)
	Logs() []string
}

// MemoryLogger implements Logger
type MemoryLogger struct {
	mu   sync.Mutex
	logs []string
}

func NewLogger() Logger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *MemoryLogger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]string, len(l.logs))
	copy(result, l.logs)
	return result
}

// Database is a test database interface
type Database interface {
	Query(sql string) string
}

// MemoryDatabase implements Database
type MemoryDatabase struct {
	Name string
}

func NewDatabase() *MemoryDatabase {
	return &MemoryDatabase{Name: "memory"}
}

func NewNamedDatabase(name string) *MemoryDatabase {
	return &MemoryDatabase{Name: name}
}

func (d *MemoryDatabase) Query(sql string) string {
	return fmt.Sprintf("%s: %s", d.Name, sql)
}

// Repository depends on Database and Logger.
type Repository struct {
	DB     Database
	Logger Logger
}

func NewRepository(db Database, logger Logger) *Repository {
	return &Repository{DB: db, Logger: logger}
}

// NewFailingRepository always fails.
func NewFailingRepository(db Database) (*Repository, error) {
	return nil, ErrConstructor
}

// Service sits on top of Repository.
type Service struct {
	ID         string
	CreatedAt  time.Time
	Repository *Repository
	Timeout    time.Duration
}

// ServiceParams is the parameter object of NewService.
type ServiceParams struct {
	hypo.In

	Repository *Repository
	Timeout    time.Duration `default:"5s"`
}

func NewService(p ServiceParams) *Service {
	return &Service{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		Repository: p.Repository,
		Timeout:    p.Timeout,
	}
}

// MockFactory records calls made through its Build method, which matches
// hypo.Factory.
type MockFactory struct {
	mock.Mock
}

func (f *MockFactory) Build(implementation reflect.Type) (any, error) {
	args := f.Called(implementation)
	return args.Get(0), args.Error(1)
}
