package visa

// User-facing text. The tool speaks Italian.
const (
	Title = "Controllo Visto Richiesto"

	LoadFailedMessage = "C'è stato un errore nel caricare i dati."

	LoadingPassports = "Sto caricando i passaporti..."
	LoadingCountries = "Sto caricando i paesi..."

	PassportPlaceholder = "Che passaporto hai?"
	CountryPlaceholder  = "Dove vai di bello?"
	DaysPlaceholder     = "Giorni di permanenza"

	PassportLabel = "Passaporto"
	CountryLabel  = "Destinazione"
	DaysLabel     = "Giorni"
	VerdictLabel  = "Esito"

	PickPassportHint = "Clicca sul paese a cui appartiene il tuo passaporto."
	PickCountryHint  = "Clicca sul paese dove vuoi viaggiare."
	EnterDaysHint    = "Inserisci il numero di giorni di permanenza."

	visaRequiredText  = "È richiesto un visto per il tuo passaporto."
	eVisaRequiredText = "È richiesto un visto elettronico per il tuo passaporto."
	visaFreeText      = "Non è richiesto un visto per il tuo passaporto."
	visaBeyondFormat  = "È richiesto un visto per il tuo passaporto oltre %d giorni."
)
