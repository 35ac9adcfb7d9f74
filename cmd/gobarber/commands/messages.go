package commands

import "strings"

type messages struct {
	signedOut         string
	alreadySignedIn   string
	activatedProvider string
	activatedUser     string
	profileUpdated    string
	passwordChanged   string
	avatarUpdated     string
	notificationRead  string
	noUnread          string
	badDate           string
	oldPassword       string
	newPassword       string
	confirmPassword   string
	password          string
}

var messagesPtBR = messages{
	signedOut:         "Sessão encerrada",
	alreadySignedIn:   "Você já está conectado",
	activatedProvider: "Conta verificada! Acesse pela versão web",
	activatedUser:     "Conta verificada! Acesse pelo aplicativo",
	profileUpdated:    "Perfil atualizado!",
	passwordChanged:   "Senha alterada!",
	avatarUpdated:     "Avatar atualizado!",
	notificationRead:  "Notificação marcada como lida",
	noUnread:          "Nenhuma notificação nova",
	badDate:           "Data inválida, use AAAA-MM-DD",
	oldPassword:       "Senha atual: ",
	newPassword:       "Nova senha: ",
	confirmPassword:   "Confirmar senha: ",
	password:          "Senha: ",
}

var messagesEnUS = messages{
	signedOut:         "Signed out",
	alreadySignedIn:   "You are already signed in",
	activatedProvider: "Account verified! Sign in on the web",
	activatedUser:     "Account verified! Sign in on the mobile app",
	profileUpdated:    "Profile updated!",
	passwordChanged:   "Password changed!",
	avatarUpdated:     "Avatar updated!",
	notificationRead:  "Notification marked as read",
	noUnread:          "No new notifications",
	badDate:           "Invalid date, use YYYY-MM-DD",
	oldPassword:       "Current password: ",
	newPassword:       "New password: ",
	confirmPassword:   "Confirm password: ",
	password:          "Password: ",
}

func messagesFor(locale string) messages {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return messagesEnUS
	}
	return messagesPtBR
}
