// Хранилище документных сессий в памяти.
//
// Основные возможности:
//   - Создание сессий редактирования с uuid-идентификаторами
//   - Сериализация команд к одному документу через мьютекс сессии
//   - Автоматическая очистка неактивных сессий по TTL
package store

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/aisa-it/blockdoc/internal/blockdoc/apierrors"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

type DocumentStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*documentSession
	ttl      time.Duration
}

type documentSession struct {
	mu       sync.Mutex
	engine   *editor.Engine
	warnings []editor.Warning
	timer    *time.Timer
	cleanup  chan struct{}
}

func NewDocumentStore(ttl time.Duration) *DocumentStore {
	return &DocumentStore{
		sessions: make(map[uuid.UUID]*documentSession),
		ttl:      ttl,
	}
}

// Create заводит новую сессию редактирования поверх переданного документа.
func (ds *DocumentStore) Create(doc *edtypes.Node, opts ...editor.Option) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	session := &documentSession{
		timer:   time.NewTimer(ds.ttl),
		cleanup: make(chan struct{}),
	}
	session.engine, err = editor.NewEngine(doc, append(opts, editor.WithWarningHandler(func(w editor.Warning) {
		session.warnings = append(session.warnings, w)
	}))...)
	if err != nil {
		return uuid.Nil, err
	}

	ds.mu.Lock()
	ds.sessions[id] = session
	ds.mu.Unlock()

	go ds.setupTimerCleanup(id, session.timer, session.cleanup)
	return id, nil
}

// Exec выполняет команду над сессией. Команды к одному документу
// сериализуются; таймер TTL сбрасывается при каждом обращении.
// Возвращает снимок документа после команды и предупреждения,
// накопленные за время её выполнения.
func (ds *DocumentStore) Exec(id uuid.UUID, cmd func(*editor.Engine) error) (editor.Snapshot, []editor.Warning, error) {
	session, err := ds.session(id)
	if err != nil {
		return editor.Snapshot{}, nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.timer.Reset(ds.ttl)
	session.warnings = session.warnings[:0]

	if err := cmd(session.engine); err != nil {
		return editor.Snapshot{}, session.collectedWarnings(), err
	}
	return session.engine.Snapshot(), session.collectedWarnings(), nil
}

// collectedWarnings отдает копию накопленных предупреждений: вызывающий
// читает их уже после освобождения мьютекса сессии, и следующая команда
// не должна перезаписать элементы под ним.
func (s *documentSession) collectedWarnings() []editor.Warning {
	if len(s.warnings) == 0 {
		return nil
	}
	return append([]editor.Warning(nil), s.warnings...)
}

// View выполняет команду только для чтения, не сбрасывая предупреждения.
func (ds *DocumentStore) View(id uuid.UUID, fn func(*editor.Engine) error) error {
	session, err := ds.session(id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.timer.Reset(ds.ttl)
	return fn(session.engine)
}

func (ds *DocumentStore) Delete(id uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if session, ok := ds.sessions[id]; ok {
		if session.cleanup != nil {
			close(session.cleanup)
		}
		if session.timer != nil {
			session.timer.Stop()
		}
		delete(ds.sessions, id)
	}
}

func (ds *DocumentStore) Count() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.sessions)
}

func (ds *DocumentStore) session(id uuid.UUID) (*documentSession, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	session, ok := ds.sessions[id]
	if !ok {
		return nil, apierrors.ErrDocumentNotFound
	}
	return session, nil
}

func (ds *DocumentStore) setupTimerCleanup(id uuid.UUID, timer *time.Timer, stopCh <-chan struct{}) {
	select {
	case <-timer.C:
		ds.Delete(id)
	case <-stopCh:
		return
	}
}
