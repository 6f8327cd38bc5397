package llm

import (
	"fmt"
	"strings"
)

// Prompts holds the system prompts for both classifier checks. Prompt
// wording is configuration, not pipeline logic: the orchestrator never
// sees it, and swapping models or payee credentials only touches this.
type Prompts struct {
	ValiditySystem string
	DateSystem     string
}

// BuildPrompts renders the classifier prompts for the given payee
// credential strings. A receipt is valid only if one of these strings
// appears verbatim in its text.
func BuildPrompts(payeeNames []string) Prompts {
	var payeeList strings.Builder
	for _, name := range payeeNames {
		fmt.Fprintf(&payeeList, "   - %q\n", name)
	}

	validity := fmt.Sprintf(`Ты - эксперт по проверке платежных документов.
Определи, является ли данный текст платежным документом (чеком).
Платежный документ должен содержать:
1. Сумму платежа (обычно с символом валюты ₽ или RUB)
2. Дату и время оплаты
3. Реквизиты получателя платежа - ОБЯЗАТЕЛЬНО должно быть указано одно из:
%s
Верни ответ в формате:
true|реквизиты найдены
или
false|причина отказа

Примеры:
true|найдены реквизиты получателя
false|реквизиты получателя не найдены в тексте чека
false|не является платежным документом`, payeeList.String())

	date := `Извлеки дату из текста чека в формате DD.MM.YYYY.
Верни только дату в указанном формате, например: 02.03.2025
Если дата не найдена, верни 'not_found'.`

	return Prompts{ValiditySystem: validity, DateSystem: date}
}
