package i18n

var ptBRCatalog = NewCatalog("pt-BR", map[Code]string{
	// Access token errors
	CodeAccessTokenInvalid:  "O token de acesso é inválido",
	CodeAccessTokenExpired:  "O token de acesso expirou",
	CodeAccessTokenMismatch: "O token de acesso foi emitido para outro valor de {{.Field}}",

	// Authorization errors
	CodeAccessDenied:  "Você não tem permissão para executar esta ação",
	CodePolicyInvalid: "Política de autorização desconhecida: {{.Policy}}",

	// Resource directory errors
	CodeResourceKindInvalid: "Tipo de recurso desconhecido: {{.Kind}}",
	CodeNotFound:            "O recurso solicitado não foi encontrado",
})

func init() {
	RegisterCatalog("pt-BR", ptBRCatalog)
}
