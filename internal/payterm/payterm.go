// Package payterm maps the agency's internal payment-term vocabulary to the
// code sets required by each downstream format. One static table carries all
// three facets per code so the vocabularies cannot drift apart.
package payterm

// Code is an internal payment-term code
type Code string

const (
	RimessaDiretta Code = "RIMESSA_DIRETTA"
	Bonifico30GGFM Code = "BONIFICO_30GG_FM"
	Bonifico60GGFM Code = "BONIFICO_60GG_FM"
	RiBa30GGFM     Code = "RIBA_30GG_FM"
	RiBa60GGFM     Code = "RIBA_60GG_FM"
	CartaDiCredito Code = "CARTA"
	Contanti       Code = "CONTANTI"
	Assegno        Code = "ASSEGNO"
)

// Term is the three-facet mapping for one internal code
type Term struct {
	Code Code

	// Label is the human label shown on agency paperwork
	Label string

	// EasyfattName is the payment name expected by Danea Easyfatt
	EasyfattName string

	// FatturaPACode is the ModalitaPagamento code (MP table) of the
	// FatturaPA schema
	FatturaPACode string
}

var terms = map[Code]Term{
	RimessaDiretta: {RimessaDiretta, "Rimessa diretta", "Rimessa diretta", "MP05"},
	Bonifico30GGFM: {Bonifico30GGFM, "Bonifico 30 gg fine mese", "Bonifico 30 gg F.M.", "MP05"},
	Bonifico60GGFM: {Bonifico60GGFM, "Bonifico 60 gg fine mese", "Bonifico 60 gg F.M.", "MP05"},
	RiBa30GGFM:     {RiBa30GGFM, "Ri.Ba. 30 gg fine mese", "Ri.Ba. 30 gg F.M.", "MP12"},
	RiBa60GGFM:     {RiBa60GGFM, "Ri.Ba. 60 gg fine mese", "Ri.Ba. 60 gg F.M.", "MP12"},
	CartaDiCredito: {CartaDiCredito, "Carta di credito", "Carta di credito", "MP08"},
	Contanti:       {Contanti, "Contanti", "Contanti", "MP01"},
	Assegno:        {Assegno, "Assegno", "Assegno", "MP02"},
}

// Lookup returns the facets for an internal code. An unrecognized code maps
// to the lenient default rather than failing, so document generation never
// blocks on an unexpected value. See fallback.
func Lookup(code Code) Term {
	if t, ok := terms[code]; ok {
		return t
	}
	return fallback(code)
}

// fallback is the documented default triple for an unmapped code: the raw
// code as label, bank transfer for both external vocabularies. Isolated here
// so an explicit-error mode can replace it without touching callers.
func fallback(code Code) Term {
	return Term{
		Code:          code,
		Label:         string(code),
		EasyfattName:  "Bonifico",
		FatturaPACode: "MP05",
	}
}

// All returns every term of the closed internal set, in a stable order.
func All() []Term {
	codes := []Code{
		RimessaDiretta,
		Bonifico30GGFM,
		Bonifico60GGFM,
		RiBa30GGFM,
		RiBa60GGFM,
		CartaDiCredito,
		Contanti,
		Assegno,
	}
	out := make([]Term, 0, len(codes))
	for _, c := range codes {
		out = append(out, terms[c])
	}
	return out
}
