package dto

// UpdateFileRequest são os campos de formulário aceitos na atualização de um
// arquivo. O conteúdo novo, quando enviado, vem como multipart à parte.
type UpdateFileRequest struct {
	Text *string `form:"text"`
	Tags *string `form:"tags"`
}

// ToFields projeta os campos presentes como o mapa de atualização parcial
func (r UpdateFileRequest) ToFields() map[string]any {
	fields := map[string]any{}
	if r.Text != nil {
		fields["text"] = *r.Text
	}
	if r.Tags != nil {
		fields["tags"] = *r.Tags
	}
	return fields
}

// DeleteManyRequest é o corpo da exclusão em lote
type DeleteManyRequest struct {
	IDs []string `json:"ids"`
}
