package rules

import (
	"sort"
	"strings"
	"time"
)

const (
	holdsPredicate = "rule_holds"
	checkPredicate = "rule_check"
	taskPredicate  = "task"
	allPredicate   = "test_all"
)

// rule_check always has exactly one answer, /true or /false, once the
// program under test compiles.
const checkRules = `rule_check(/true) :- rule_holds(/ok).
rule_check(/false) :- target_date(_), !rule_holds(/ok).
`

// BuildValidationProgram wraps a single rule body in a synthetic clause
// and a rule_check goal with a boolean answer.
func BuildValidationProgram(body string, date time.Time) string {
	var b strings.Builder
	b.WriteString(DateLibrary(date))
	b.WriteString("# rule under test\n")
	b.WriteString(checkClause(body))
	b.WriteString(checkRules)
	return b.String()
}

// BuildProgram renders one task(ID) clause per rule, in ascending ID order,
// and a test_all(Ids) rule collecting every satisfied ID into a list.
// With no rules the program defines no test_all facts at all, so querying
// it yields nothing rather than failing analysis on an undefined task/1.
func BuildProgram(rules map[string]string, date time.Time) string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(DateLibrary(date))
	b.WriteString("# task rules\n")
	if len(ids) == 0 {
		b.WriteString("# none\n")
		return b.String()
	}
	for _, id := range ids {
		b.WriteString(taskPredicate)
		b.WriteString("(")
		b.WriteString(quote(id))
		b.WriteString(") :- ")
		b.WriteString(trimBody(rules[id]))
		b.WriteString(".\n")
	}
	b.WriteString(allPredicate + "(Ids) :- " + taskPredicate + "(Id) |> do fn:group_by(), let Ids = fn:collect(Id).\n")
	return b.String()
}

func checkClause(body string) string {
	return holdsPredicate + "(/ok) :- " + trimBody(body) + ".\n"
}

// trimBody drops # comments, surrounding whitespace and one trailing period
// so authors may write either "today(/monday)" or "today(/monday). # note".
func trimBody(body string) string {
	body = strings.TrimSpace(stripComments(body))
	body = strings.TrimSuffix(body, ".")
	return strings.TrimSpace(body)
}

// stripComments removes the # comment at the end of each line, leaving #
// inside string literals alone.
func stripComments(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if cut := commentStart(line); cut >= 0 {
			line = line[:cut]
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func commentStart(line string) int {
	inString, escaped := false, false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case r == '#' && !inString:
			return i
		}
	}
	return -1
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
