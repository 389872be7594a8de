// Package legacy converts candidate rows from the two historical schemas
// (the Google-Sheets export with uppercase Portuguese column names, and the
// flat lowercase schema that preceded the jsonb payload) into the canonical
// Candidate shape. Unknown columns are preserved verbatim in the payload's
// extra keys so that re-exports lose nothing.
package legacy

import (
	"encoding/json"
	"errors"
	"time"

	"go-triagem-backend/internal/domain"
)

type Schema int

const (
	SchemaUnknown Schema = iota
	SchemaCanonical
	SchemaWide // uppercase Sheets columns (NOMECOMPLETO, AREAATUACAO, ...)
	SchemaFlat // lowercase flat columns (cpf, cargo_pretendido at top level)
)

var ErrUnknownSchema = errors.New("legacy: row matches no known candidate schema")

// wide-schema column names, exactly as exported from the spreadsheet
const (
	colNomeCompleto    = "NOMECOMPLETO"
	colNomeSocial      = "NOMESOCIAL"
	colCPF             = "CPF"
	colVagaPCD         = "VAGAPCD"
	colLaudoMedico     = "LAUDO MEDICO"
	colAreaAtuacao     = "AREAATUACAO"
	colCargoPretendido = "CARGOPRETENDIDO"
	colCurriculo       = "CURRICULOVITAE"
	colDocsPessoais    = "DOCUMENTOSPESSOAIS"
	colDocsProf        = "DOCUMENTOSPROFISSIONAIS"
	colDiploma         = "DIPLOMACERTIFICADO"
	colDocsConselho    = "DOCUMENTOSCONSELHO"
	colEspecializacoes = "ESPECIALIZACOESCURSOS"
)

var wideColumns = []string{
	colNomeCompleto, colNomeSocial, colCPF, colVagaPCD, colLaudoMedico,
	colAreaAtuacao, colCargoPretendido, colCurriculo, colDocsPessoais,
	colDocsProf, colDiploma, colDocsConselho, colEspecializacoes,
}

var flatColumns = []string{
	"cpf", "nome_social", "cargo_pretendido", "vaga_pcd", "laudo_medico",
	"curriculo", "documentos_pessoais", "documentos_profissionais",
	"diploma_certificado", "documentos_conselho", "especializacoes",
}

// systemColumns exist in every schema variant and never belong in the payload.
var systemColumns = map[string]struct{}{
	"id": {}, "registration_number": {}, "name": {}, "area": {}, "status": {},
	"assigned_to": {}, "assigned_by": {}, "assigned_at": {}, "priority": {},
	"notes": {}, "data": {}, "created_at": {}, "updated_at": {},
}

// Detect inspects a raw row and reports which schema variant it uses.
func Detect(raw []byte) Schema {
	var row map[string]json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		return SchemaUnknown
	}
	for _, col := range wideColumns {
		if _, ok := row[col]; ok {
			return SchemaWide
		}
	}
	if _, ok := row["data"]; ok {
		return SchemaCanonical
	}
	for _, col := range flatColumns {
		if _, ok := row[col]; ok {
			return SchemaFlat
		}
	}
	if _, ok := row["name"]; ok {
		return SchemaCanonical
	}
	return SchemaUnknown
}

// Normalize converts a raw row in any supported schema into a canonical
// Candidate. IDs and timestamps are left for the service layer to assign.
func Normalize(raw []byte) (*domain.Candidate, error) {
	switch Detect(raw) {
	case SchemaCanonical:
		var c domain.Candidate
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case SchemaWide:
		return fromWide(raw)
	case SchemaFlat:
		return fromFlat(raw)
	default:
		return nil, ErrUnknownSchema
	}
}

// wideRow mirrors the spreadsheet export plus the system fields the second
// rewrite bolted onto it.
type wideRow struct {
	RegistrationNumber string `json:"registration_number"`
	NomeCompleto       string `json:"NOMECOMPLETO"`
	NomeSocial         string `json:"NOMESOCIAL"`
	CPF                string `json:"CPF"`
	VagaPCD            string `json:"VAGAPCD"`
	LaudoMedico        string `json:"LAUDO MEDICO"`
	AreaAtuacao        string `json:"AREAATUACAO"`
	CargoPretendido    string `json:"CARGOPRETENDIDO"`
	Curriculo          string `json:"CURRICULOVITAE"`
	DocsPessoais       string `json:"DOCUMENTOSPESSOAIS"`
	DocsProfissionais  string `json:"DOCUMENTOSPROFISSIONAIS"`
	Diploma            string `json:"DIPLOMACERTIFICADO"`
	DocsConselho       string `json:"DOCUMENTOSCONSELHO"`
	Especializacoes    string `json:"ESPECIALIZACOESCURSOS"`

	Status     string     `json:"status"`
	AssignedTo *string    `json:"assigned_to"`
	AssignedBy *string    `json:"assigned_by"`
	AssignedAt *time.Time `json:"assigned_at"`
	Priority   int        `json:"priority"`
	Notes      string     `json:"notes"`
}

func fromWide(raw []byte) (*domain.Candidate, error) {
	var row wideRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}

	c := &domain.Candidate{
		RegistrationNumber: row.RegistrationNumber,
		Name:               row.NomeCompleto,
		Area:               row.AreaAtuacao,
		Status:             row.Status,
		AssignedTo:         row.AssignedTo,
		AssignedBy:         row.AssignedBy,
		AssignedAt:         row.AssignedAt,
		Priority:           row.Priority,
		Data: domain.CandidateData{
			CPF:                     row.CPF,
			NomeSocial:              row.NomeSocial,
			CargoPretendido:         row.CargoPretendido,
			VagaPCD:                 row.VagaPCD,
			LaudoMedico:             row.LaudoMedico,
			Curriculo:               row.Curriculo,
			DocumentosPessoais:      row.DocsPessoais,
			DocumentosProfissionais: row.DocsProfissionais,
			DiplomaCertificado:      row.Diploma,
			DocumentosConselho:      row.DocsConselho,
			Especializacoes:         row.Especializacoes,
			Notes:                   row.Notes,
		},
	}
	c.Data.Extra = extraColumns(raw, wideColumns)
	return c, nil
}

// flatRow is the intermediate rewrite: payload fields live at the top level
// in lowercase, before they were folded into the jsonb column.
type flatRow struct {
	RegistrationNumber string     `json:"registration_number"`
	Name               string     `json:"name"`
	Area               string     `json:"area"`
	Status             string     `json:"status"`
	AssignedTo         *string    `json:"assigned_to"`
	AssignedBy         *string    `json:"assigned_by"`
	AssignedAt         *time.Time `json:"assigned_at"`
	Priority           int        `json:"priority"`
	Notes              string     `json:"notes"`

	CPF                     string `json:"cpf"`
	NomeSocial              string `json:"nome_social"`
	CargoPretendido         string `json:"cargo_pretendido"`
	VagaPCD                 string `json:"vaga_pcd"`
	LaudoMedico             string `json:"laudo_medico"`
	Curriculo               string `json:"curriculo"`
	DocsPessoais            string `json:"documentos_pessoais"`
	DocsProfissionais       string `json:"documentos_profissionais"`
	Diploma                 string `json:"diploma_certificado"`
	DocsConselho            string `json:"documentos_conselho"`
	Especializacoes         string `json:"especializacoes"`
}

func fromFlat(raw []byte) (*domain.Candidate, error) {
	var row flatRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}

	c := &domain.Candidate{
		RegistrationNumber: row.RegistrationNumber,
		Name:               row.Name,
		Area:               row.Area,
		Status:             row.Status,
		AssignedTo:         row.AssignedTo,
		AssignedBy:         row.AssignedBy,
		AssignedAt:         row.AssignedAt,
		Priority:           row.Priority,
		Data: domain.CandidateData{
			CPF:                     row.CPF,
			NomeSocial:              row.NomeSocial,
			CargoPretendido:         row.CargoPretendido,
			VagaPCD:                 row.VagaPCD,
			LaudoMedico:             row.LaudoMedico,
			Curriculo:               row.Curriculo,
			DocumentosPessoais:      row.DocsPessoais,
			DocumentosProfissionais: row.DocsProfissionais,
			DiplomaCertificado:      row.Diploma,
			DocumentosConselho:      row.DocsConselho,
			Especializacoes:         row.Especializacoes,
			Notes:                   row.Notes,
		},
	}
	c.Data.Extra = extraColumns(raw, flatColumns)
	return c, nil
}

// extraColumns collects row keys that are neither mapped schema columns nor
// system fields; they round-trip through the payload untouched.
func extraColumns(raw []byte, mapped []string) map[string]json.RawMessage {
	var row map[string]json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil
	}
	for _, col := range mapped {
		delete(row, col)
	}
	for col := range systemColumns {
		delete(row, col)
	}
	if len(row) == 0 {
		return nil
	}
	return row
}
