package ui

import "strings"

type labels struct {
	welcome       string
	scheduled     string
	today         string
	next          string
	morning       string
	afternoon     string
	noneInPeriod  string
	upcoming      string
	past          string
	noneBooked    string
	providers     string
	noProviders   string
	availableDays string
	unavailable   string
	notifications string
	noNotes       string
	created       string
	signInAgain   string
	unexpected    string
	provider      string
	client        string
}

var labelsPtBR = labels{
	welcome:       "Bem-vindo,",
	scheduled:     "Horários agendados",
	today:         "Hoje",
	next:          "Atendimento a seguir",
	morning:       "Manhã",
	afternoon:     "Tarde",
	noneInPeriod:  "Nenhum agendamento neste período",
	upcoming:      "Próximos agendamentos",
	past:          "Agendamentos anteriores",
	noneBooked:    "Nenhum agendamento",
	providers:     "Cabeleireiros",
	noProviders:   "Nenhum cabeleireiro disponível",
	availableDays: "Dias indisponíveis",
	unavailable:   "indisponível",
	notifications: "Notificações",
	noNotes:       "Nenhuma notificação",
	created:       "Agendamento concluído",
	signInAgain:   "Faça login para continuar",
	unexpected:    "Ocorreu um erro, tente novamente",
	provider:      "cabeleireiro",
	client:        "cliente",
}

var labelsEnUS = labels{
	welcome:       "Welcome,",
	scheduled:     "Scheduled times",
	today:         "Today",
	next:          "Up next",
	morning:       "Morning",
	afternoon:     "Afternoon",
	noneInPeriod:  "No appointments in this period",
	upcoming:      "Upcoming appointments",
	past:          "Past appointments",
	noneBooked:    "No appointments",
	providers:     "Providers",
	noProviders:   "No providers available",
	availableDays: "Unavailable days",
	unavailable:   "unavailable",
	notifications: "Notifications",
	noNotes:       "No notifications",
	created:       "Appointment booked",
	signInAgain:   "Sign in to continue",
	unexpected:    "Something went wrong, please try again",
	provider:      "provider",
	client:        "client",
}

func labelsFor(locale string) labels {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return labelsEnUS
	}
	return labelsPtBR
}
