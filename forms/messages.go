package forms

import "strings"

// Keys are "field.tag" with bare "tag" as the fallback.
var messagesPtBR = map[string]string{
	"required":                   "Campo obrigatório",
	"email":                      "Digite um email valido!",
	"name.required":              "Nome é obrigatório!",
	"surname.required":           "Sobrenome é obrigatório!",
	"email.required":             "E-mail é obrigatório",
	"address.required_if":        "Endereço é obrigatório",
	"password.required":          "Digite uma senha!",
	"password.min":               "Senha deve conter no mínimo 8 caracteres!",
	"old_password.required":      "Digite sua senha atual",
	"new_password.required":      "Digite uma senha!",
	"new_password.required_with": "Se deseja alterar sua senha preencha este campo",
	"new_password.min":           "Senha deve conter no mínimo 8 caracteres!",
	"confirm_password.required":  "Confirme sua senha!",
	"confirm_password.eqfield":   "Confirmação incorreta",
	"token.required":             "Link de recuperação inválido",
	"provider_id.required":       "Selecione um cabeleireiro",
	"provider_id.uuid":           "Cabeleireiro inválido",
	"date.required":              "Selecione uma data",
	"hour.required":              "Selecione um horário válido",
	"hour.min":                   "Agendamentos apenas entre 8:00 e 17:00",
	"hour.max":                   "Agendamentos apenas entre 8:00 e 17:00",
}

var messagesEnUS = map[string]string{
	"required":                   "Required",
	"email":                      "Enter a valid e-mail",
	"name.required":              "Name is required",
	"surname.required":           "Surname is required",
	"email.required":             "E-mail is required",
	"address.required_if":        "Address is required",
	"password.required":          "Enter a password",
	"password.min":               "Password must have at least 8 characters",
	"old_password.required":      "Enter your current password",
	"new_password.required":      "Enter a password",
	"new_password.required_with": "Fill in this field to change your password",
	"new_password.min":           "Password must have at least 8 characters",
	"confirm_password.required":  "Confirm your password",
	"confirm_password.eqfield":   "Passwords do not match",
	"token.required":             "Invalid recovery link",
	"provider_id.required":       "Select a provider",
	"provider_id.uuid":           "Invalid provider",
	"date.required":              "Select a date",
	"hour.required":              "Select a valid hour",
	"hour.min":                   "Appointments only between 8:00 and 17:00",
	"hour.max":                   "Appointments only between 8:00 and 17:00",
}

func messagesFor(locale string) map[string]string {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return messagesEnUS
	}
	return messagesPtBR
}
