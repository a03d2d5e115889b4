package browser

import (
	"fmt"
	"strings"
)

// By is a locator strategy. Values match the WebDriver strategy names.
type By string

// Locator strategies
const (
	ByXPath     By = "xpath"
	ByCSS       By = "css selector"
	ByID        By = "id"
	ByName      By = "name"
	ByClassName By = "class name"
	ByTagName   By = "tag name"
	ByLinkText  By = "link text"
)

// Locator is a (strategy, value) pair identifying a DOM element.
type Locator struct {
	By    By
	Value string
}

// XPath returns an XPath locator
func XPath(expr string) Locator { return Locator{By: ByXPath, Value: expr} }

// CSS returns a CSS selector locator
func CSS(selector string) Locator { return Locator{By: ByCSS, Value: selector} }

// ID returns a locator matching the element id
func ID(id string) Locator { return Locator{By: ByID, Value: id} }

// Name returns a locator matching the name attribute
func Name(name string) Locator { return Locator{By: ByName, Value: name} }

// ClassName returns a locator matching a single class
func ClassName(class string) Locator { return Locator{By: ByClassName, Value: class} }

// TagName returns a locator matching the tag
func TagName(tag string) Locator { return Locator{By: ByTagName, Value: tag} }

// LinkText returns a locator matching an anchor by its exact text
func LinkText(text string) Locator { return Locator{By: ByLinkText, Value: text} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// Validate reports whether the locator can be evaluated at all.
func (l Locator) Validate() error {
	if strings.TrimSpace(l.Value) == "" {
		return fmt.Errorf("%w: empty value for %s", ErrInvalidSelector, l.By)
	}
	switch l.By {
	case ByXPath, ByCSS, ByID, ByName, ByTagName, ByLinkText:
		return nil
	case ByClassName:
		if strings.ContainsAny(l.Value, " .\t\n") {
			return fmt.Errorf("%w: compound class names are not permitted: %q", ErrInvalidSelector, l.Value)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidSelector, l.By)
	}
}

// CSSSelector returns the CSS form of the locator. The second result is
// false for strategies that have no CSS equivalent (xpath, link text).
func (l Locator) CSSSelector() (string, bool) {
	switch l.By {
	case ByCSS:
		return l.Value, true
	case ByID:
		return fmt.Sprintf("[id=%q]", l.Value), true
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value), true
	case ByClassName:
		return "." + l.Value, true
	case ByTagName:
		return l.Value, true
	default:
		return "", false
	}
}

// XPathExpr returns the XPath form of the locator. CSS locators have no
// general XPath form; the second result is false for them.
func (l Locator) XPathExpr() (string, bool) {
	switch l.By {
	case ByXPath:
		return l.Value, true
	case ByID:
		return fmt.Sprintf("//*[@id=%s]", XPathLiteral(l.Value)), true
	case ByName:
		return fmt.Sprintf("//*[@name=%s]", XPathLiteral(l.Value)), true
	case ByClassName:
		return fmt.Sprintf("//*[contains(concat(' ', normalize-space(@class), ' '), %s)]", XPathLiteral(" "+l.Value+" ")), true
	case ByTagName:
		return "//" + l.Value, true
	case ByLinkText:
		return fmt.Sprintf("//a[normalize-space(.)=%s]", XPathLiteral(l.Value)), true
	default:
		return "", false
	}
}

// Relative returns a locator usable for lookups scoped to another element.
// Absolute XPath expressions are anchored at the context node, including
// ones wrapped in parentheses such as (//li)[1].
func (l Locator) Relative() Locator {
	if css, ok := l.CSSSelector(); ok {
		return CSS(css)
	}
	expr, _ := l.XPathExpr()
	path := strings.TrimLeft(expr, "(")
	if strings.HasPrefix(path, "/") {
		open := len(expr) - len(path)
		expr = expr[:open] + "." + path
	}
	return XPath(expr)
}

// XPathLiteral quotes s for use inside an XPath expression.
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
