package pipeline

// User-facing outcome messages. The chat frontend shows these verbatim,
// so they stay in the shop's language.
const (
	MsgAccepted             = "Чек успешно проверен"
	MsgFileNotFound         = "Файл не найден"
	MsgPDFRenderer          = "Для обработки PDF требуется установка рендерера"
	MsgPDFError             = "Не удалось обработать PDF документ"
	MsgDocumentError        = "Не удалось обработать документ"
	MsgUnsupportedFormat    = "Неподдерживаемый формат файла. Отправьте чек в формате PDF, JPG или PNG"
	MsgTextNotRecognized    = "Не удалось распознать текст на изображении"
	MsgNotAReceipt          = "Отправленный документ не является платежным чеком"
	MsgDateNotFound         = "Не удалось определить дату в чеке"
	MsgDateMismatch         = "Дата в чеке не совпадает с датой оформления заказа"
	MsgEvaluationInProgress = "Проверка чека по этому заказу уже выполняется"
)
