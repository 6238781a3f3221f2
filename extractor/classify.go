package extractor

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
)

// Classify picks the statement type from the file name and the opening
// characters of page one. The first matching rule wins.
func Classify(filename, pageOneText string, cfg config.Classifier) common.StatementType {
	if cfg.PaylahFilenameGlob != "" {
		if ok, _ := path.Match(cfg.PaylahFilenameGlob, filepath.Base(filename)); ok {
			return common.DBSPaylah
		}
	}

	text := prefix(pageOneText, cfg.PrefixLength)

	switch {
	case contains(text, cfg.CashbackPhrase):
		return common.DBSCashback
	case contains(text, cfg.CreditCardPhrase) && contains(text, cfg.CreditCardNumber):
		return common.DBSCreditCard
	case contains(text, cfg.AccountPhrase):
		return common.DBSAccount
	case contains(text, cfg.PaylahPhrase):
		return common.DBSPaylah
	}

	return common.Unknown
}

// ClassifySource reads page one of src, when the file name alone does not
// decide, and classifies it.
func ClassifySource(name string, src common.Source, cfg config.Classifier) (common.StatementType, error) {
	if t := Classify(name, "", cfg); t != common.Unknown {
		return t, nil
	}
	if src.NumPages() == 0 {
		return common.Unknown, nil
	}
	lines, err := src.PageText(0)
	if err != nil {
		return common.Unknown, err
	}
	return Classify(name, strings.Join(lines, "\n"), cfg), nil
}

// contains treats an empty needle as absent.
func contains(text, needle string) bool {
	return needle != "" && strings.Contains(text, needle)
}

func prefix(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
