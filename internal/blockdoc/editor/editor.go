// Пакет editor реализует движок структурного редактирования документа:
// атомарные команды мутации блоков, правила валидации и конечный автомат
// перетаскивания. Движок владеет документом единолично; наружу отдаются
// только неизменяемые снапшоты после каждой зафиксированной транзакции.
//
// Основные возможности:
//   - Перемещение, дублирование, удаление и перекраска блоков по линейным позициям.
//   - Сброс инлайн-форматирования и преобразование типа блока.
//   - Атомарность: команда либо фиксирует одну транзакцию, либо не меняет документ.
//   - Уведомления об изменениях и структурированные предупреждения об отказах.
package editor

import (
	"errors"
	"fmt"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// ErrMalformedDocument возвращается при попытке создать движок на документе
// с некорректным корнем.
var ErrMalformedDocument = errors.New("document root must be a doc node")

// Snapshot — неизменяемая копия состояния движка после фиксации транзакции.
// Держать ссылки на узлы снапшота через границу транзакции нельзя: после
// следующей мутации они устаревают.
type Snapshot struct {
	Doc       *edtypes.Node
	Revision  int64
	Cursor    *int
	DragPhase DragPhase
}

// Warning — структурированное предупреждение об отклоненной операции,
// предназначенное слою представления (тосты и т.п.).
type Warning struct {
	Reason string `json:"reason"`
}

// Option настраивает движок при создании.
type Option func(*Engine)

// WithWarnOnLossy управляет предупреждением при преобразованиях, уплощающих
// вложенную структуру. По умолчанию включено.
func WithWarnOnLossy(enabled bool) Option {
	return func(e *Engine) { e.warnOnLossy = enabled }
}

// WithChangeHandler регистрирует обработчик уведомлений об изменениях.
func WithChangeHandler(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onChange = append(e.onChange, fn) }
}

// WithWarningHandler регистрирует обработчик предупреждений.
func WithWarningHandler(fn func(Warning)) Option {
	return func(e *Engine) { e.onWarning = append(e.onWarning, fn) }
}

// Engine - движок редактирования одного документа. Не потокобезопасен:
// команды выполняются строго последовательно (реентерабельность не
// предполагается), сериализацию обеспечивает вызывающая сторона.
type Engine struct {
	doc      *edtypes.Node
	revision int64
	cursor   *int
	drag     dragState

	warnOnLossy bool
	onChange    []func(Snapshot)
	onWarning   []func(Warning)
}

// NewEngine создает движок над документом. Пустой документ дополняется одним
// пустым параграфом: документ всегда содержит хотя бы один блок.
func NewEngine(doc *edtypes.Node, opts ...Option) (*Engine, error) {
	if doc == nil {
		doc = edtypes.NewDocument()
	}
	if doc.Type != edtypes.TypeDoc {
		return nil, ErrMalformedDocument
	}
	doc = doc.Clone()
	if len(doc.Content) == 0 {
		doc.Content = []*edtypes.Node{edtypes.NewParagraph()}
	}
	e := &Engine{doc: doc, warnOnLossy: true}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Revision возвращает номер последней зафиксированной транзакции.
func (e *Engine) Revision() int64 { return e.revision }

// Snapshot возвращает копию текущего состояния документа.
func (e *Engine) Snapshot() Snapshot {
	var cursor *int
	if e.cursor != nil {
		c := *e.cursor
		cursor = &c
	}
	return Snapshot{
		Doc:       e.doc.Clone(),
		Revision:  e.revision,
		Cursor:    cursor,
		DragPhase: e.drag.phase,
	}
}

// txnResult — исход транзакции: либо новый документ, либо причина отказа.
type txnResult struct {
	doc    *edtypes.Node
	cursor *int
	failed string
	silent bool
}

func txnOK(doc *edtypes.Node, cursor *int) txnResult {
	return txnResult{doc: doc, cursor: cursor}
}

func txnFail(reason string) txnResult {
	return txnResult{failed: reason}
}

func txnFailSilent(reason string) txnResult {
	return txnResult{failed: reason, silent: true}
}

// commit применяет исход транзакции: при успехе подменяет документ целиком и
// рассылает новый снапшот, при отказе документ остается нетронутым.
func (e *Engine) commit(r txnResult) bool {
	if r.failed != "" {
		if !r.silent {
			e.warn(r.failed)
		}
		return false
	}
	e.doc = r.doc
	e.revision++
	e.cursor = r.cursor

	// Мутация документа во время перетаскивания обрывает и откатывает его.
	if e.drag.phase == DragDragging {
		e.drag = dragState{}
		e.warn(ReasonDragAborted)
	}

	e.notify()
	return true
}

func (e *Engine) warn(reason string) {
	for _, fn := range e.onWarning {
		fn(Warning{Reason: reason})
	}
}

func (e *Engine) notify() {
	if len(e.onChange) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.onChange {
		fn(snap)
	}
}

func noBlockAt(pos int) string {
	return fmt.Sprintf("%s: %d", ReasonNoBlockAtPosition, pos)
}
