package cuebench

// ParseFormula counts atoms per element in a Hill-notation chemical
// formula ("C6H12O6", "H2O", "CHO2"). Element symbols are an uppercase
// letter followed by optional lowercase letters; a missing count means
// one atom. Anything unparseable (polymer R-groups, dotted hydrates)
// yields nil: such species carry no usable atom counts.
func ParseFormula(formula string) map[string]int {
	counts := make(map[string]int)
	i := 0
	for i < len(formula) {
		c := formula[i]
		if c < 'A' || c > 'Z' {
			return nil
		}
		j := i + 1
		for j < len(formula) && formula[j] >= 'a' && formula[j] <= 'z' {
			j++
		}
		element := formula[i:j]

		n := 0
		k := j
		for k < len(formula) && formula[k] >= '0' && formula[k] <= '9' {
			n = n*10 + int(formula[k]-'0')
			k++
		}
		if k == j {
			n = 1
		}

		counts[element] += n
		i = k
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}

// CarbonCount returns the number of carbon atoms in the formula.
//
// The element scan distinguishes carbon from two-letter symbols that
// start with C (Cl, Ca, Co, Cu, ...), so "CaCl2" counts zero carbons
// while "CO2" counts one.
func CarbonCount(formula string) int {
	return ParseFormula(formula)["C"]
}
