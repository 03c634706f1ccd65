package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/futig/rag-backend/internal/entity"
)

const (
	// Welcome messages
	MsgWelcome = `👋 Привет! Я отвечаю на вопросы по базе знаний.

Просто напиши вопрос, и я найду подходящие материалы.
Пришли документ (PDF, TXT или Markdown), чтобы добавить его в базу.`

	MsgHelp = `🤖 Команды бота:

/start - Приветствие
/help - Показать эту справку
/seed - Загрузить базовый набор знаний

Любое текстовое сообщение считается вопросом.
Документ PDF, TXT или MD добавляется в базу знаний.`

	// Knowledge base
	MsgSeedStarted = `⏳ Загружаю базовый набор знаний...`
	MsgSeedDone    = `✅ База знаний заполнена: %d записей.`

	// Documents
	MsgDocumentReceived = `📥 Документ получен, обрабатываю...`
	MsgDocumentIngested = `✅ Документ «%s» добавлен: %d фрагментов.`

	MsgEmptyQuestion = `❓ Напиши вопрос текстом.`

	// Errors
	ErrGeneric            = `❌ Произошла ошибка. Попробуйте ещё раз.`
	ErrGeneration         = `❌ Не удалось сформировать ответ. Попробуйте ещё раз.`
	ErrUnknownCommand     = `❌ Неизвестная команда. Используйте /help`
	ErrInvalidFile        = `❌ Неверный формат файла. Поддерживаются PDF, TXT и Markdown.`
	ErrFileTooLarge       = `❌ Файл слишком большой.`
	ErrEmptyDocument      = `❌ В документе не найден текст.`
	ErrInvalidInput       = `❌ Неверный запрос. Попробуй по-другому.`
	ErrNetworkIssue       = `❌ Проблема с соединением. Попробуй чуть позже.`
	ErrServiceUnavailable = `❌ Сервис временно недоступен. Попробуй через пару минут.`
	ErrTimeout            = `❌ Операция заняла слишком много времени. Попробуй ещё раз.`
	ErrQuotaExceeded      = `❌ Превышен лимит запросов. Подожди немного.`
)

// RenderSeedDone formats the seed summary
func RenderSeedDone(chunkCount int) string {
	return fmt.Sprintf(MsgSeedDone, chunkCount)
}

// RenderDocumentIngested formats the ingestion summary
func RenderDocumentIngested(filename string, chunkCount int) string {
	return fmt.Sprintf(MsgDocumentIngested, filename, chunkCount)
}

// ClassifyError analyzes an error and returns an appropriate user-friendly message
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrUnsupportedFileType):
		return ErrInvalidFile
	case errors.Is(err, entity.ErrFileTooLarge):
		return ErrFileTooLarge
	case errors.Is(err, entity.ErrEmptyDocument):
		return ErrEmptyDocument
	case errors.Is(err, entity.ErrInvalidParameters), errors.Is(err, entity.ErrMissingField):
		return ErrInvalidInput
	case errors.Is(err, entity.ErrRateLimited):
		return ErrQuotaExceeded
	case errors.Is(err, entity.ErrGenerationStream):
		return ErrGeneration
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrServiceUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	// Embedding outage during ingestion
	if errors.Is(err, entity.ErrEmbeddingService) {
		return ErrServiceUnavailable
	}

	return ErrGeneric
}
