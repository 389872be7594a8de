package domain

import "encoding/json"

// CandidateData is the supplementary payload stored in the candidates.data
// jsonb column. The recognized keys are typed; anything else a legacy import
// carried along is kept verbatim in Extra and round-trips unchanged.
type CandidateData struct {
	CPF                     string `json:"cpf,omitempty" validate:"omitempty,valid_cpf"`
	NomeSocial              string `json:"nome_social,omitempty"`
	CargoPretendido         string `json:"cargo_pretendido,omitempty"`
	VagaPCD                 string `json:"vaga_pcd,omitempty"`
	LaudoMedico             string `json:"laudo_medico,omitempty"`
	Curriculo               string `json:"curriculo,omitempty"`
	DocumentosPessoais      string `json:"documentos_pessoais,omitempty"`
	DocumentosProfissionais string `json:"documentos_profissionais,omitempty"`
	DiplomaCertificado      string `json:"diploma_certificado,omitempty"`
	DocumentosConselho      string `json:"documentos_conselho,omitempty"`
	Especializacoes         string `json:"especializacoes,omitempty"`
	Notes                   string `json:"notes,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// knownPayloadKeys must match the json tags above.
var knownPayloadKeys = map[string]struct{}{
	"cpf":                      {},
	"nome_social":              {},
	"cargo_pretendido":         {},
	"vaga_pcd":                 {},
	"laudo_medico":             {},
	"curriculo":                {},
	"documentos_pessoais":      {},
	"documentos_profissionais": {},
	"diploma_certificado":      {},
	"documentos_conselho":      {},
	"especializacoes":          {},
	"notes":                    {},
}

// payloadAlias avoids recursing into the custom (un)marshalers.
type payloadAlias CandidateData

func (d *CandidateData) UnmarshalJSON(b []byte) error {
	var alias payloadAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for key := range raw {
		if _, known := knownPayloadKeys[key]; known {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*d = CandidateData(alias)
	return nil
}

func (d CandidateData) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(payloadAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return typed, nil
	}

	merged := make(map[string]json.RawMessage, len(d.Extra)+len(knownPayloadKeys))
	for key, value := range d.Extra {
		merged[key] = value
	}
	var typedMap map[string]json.RawMessage
	if err := json.Unmarshal(typed, &typedMap); err != nil {
		return nil, err
	}
	// Typed fields win over stale duplicates in Extra.
	for key, value := range typedMap {
		merged[key] = value
	}
	return json.Marshal(merged)
}
