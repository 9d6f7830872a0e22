package handler

// Client-facing validation messages
const (
	MsgMessagesRequired     = "Se requiere un array de mensajes"
	MsgProfileFieldsMissing = "Se requiere user_id y profile_text"
	MsgProfileIDRequired    = "Se requiere profile_id"
	MsgProfileNotFound      = "Perfil no encontrado"
)

// Search history messages
const (
	MsgPromptRequired       = "Se requiere prompt"
	MsgListingFieldsMissing = "Se requiere id_busquedas y link"
	MsgInvalidID            = "ID inválido"
	MsgSearchNotFound       = "Búsqueda no encontrada"
	MsgListingNotFound      = "Propiedad no encontrada"
)
