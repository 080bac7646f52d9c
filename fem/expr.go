// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Expression holds a parsed mathematical expression
//  Syntax: + - * / ^, unary minus, parentheses, numbers, variables and the functions
//          sin cos tan exp log sqrt abs sign pow min max
type Expression struct {
	src  string
	root node
}

// ParseExpression parses an expression
func ParseExpression(src string) (*Expression, error) {
	p := &parser{src: src}
	if err := p.tokenize(); err != nil {
		return nil, err
	}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf(p.toks[p.pos], "unexpected %q", p.toks[p.pos].text)
	}
	return &Expression{src: src, root: root}, nil
}

// String returns the expression as given by the user or, for derived expressions, a
// representation of the tree
func (o *Expression) String() string {
	if o.src != "" {
		return o.src
	}
	return o.root.String()
}

// Variables returns the sorted names of all variables
func (o *Expression) Variables() (res []string) {
	set := make(map[string]bool)
	o.root.vars(set)
	for name := range set {
		res = append(res, name)
	}
	sort.Strings(res)
	return
}

// Eval evaluates the expression
func (o *Expression) Eval(values map[string]float64) (float64, error) {
	for _, name := range o.Variables() {
		if _, ok := values[name]; !ok {
			return 0, chk.Err("cannot evaluate %q: variable %q is not defined", o.String(), name)
		}
	}
	return o.root.eval(values), nil
}

// Derivative returns the derivative of the expression with respect to variable name
func (o *Expression) Derivative(name string) *Expression {
	return &Expression{root: o.root.deriv(name)}
}

// IsConstant tells whether the expression does not depend on any variable
func (o *Expression) IsConstant() bool {
	_, ok := o.root.(num)
	return ok
}

// tree ///////////////////////////////////////////////////////////////////////////////////////////

type node interface {
	eval(v map[string]float64) float64
	deriv(name string) node
	vars(set map[string]bool)
	String() string
}

type num float64

func (o num) eval(v map[string]float64) float64 { return float64(o) }
func (o num) deriv(name string) node             { return num(0) }
func (o num) vars(set map[string]bool)           {}
func (o num) String() string                     { return strconv.FormatFloat(float64(o), 'g', -1, 64) }

type variable string

func (o variable) eval(v map[string]float64) float64 { return v[string(o)] }
func (o variable) vars(set map[string]bool)           { set[string(o)] = true }
func (o variable) String() string                     { return string(o) }
func (o variable) deriv(name string) node {
	if string(o) == name {
		return num(1)
	}
	return num(0)
}

type neg struct{ a node }

func (o neg) eval(v map[string]float64) float64 { return -o.a.eval(v) }
func (o neg) deriv(name string) node             { return mkNeg(o.a.deriv(name)) }
func (o neg) vars(set map[string]bool)           { o.a.vars(set) }
func (o neg) String() string                     { return "-(" + o.a.String() + ")" }

type binary struct {
	op   byte
	a, b node
}

func (o binary) eval(v map[string]float64) float64 {
	a, b := o.a.eval(v), o.b.eval(v)
	switch o.op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	}
	return math.Pow(a, b)
}

func (o binary) deriv(name string) node {
	da, db := o.a.deriv(name), o.b.deriv(name)
	switch o.op {
	case '+':
		return mkAdd(da, db)
	case '-':
		return mkSub(da, db)
	case '*':
		return mkAdd(mkMul(da, o.b), mkMul(o.a, db))
	case '/':
		return mkDiv(mkSub(mkMul(da, o.b), mkMul(o.a, db)), mkPow(o.b, num(2)))
	}
	return powDeriv(o.a, o.b, da, db)
}

func (o binary) vars(set map[string]bool) {
	o.a.vars(set)
	o.b.vars(set)
}

func (o binary) String() string {
	return "(" + o.a.String() + string(o.op) + o.b.String() + ")"
}

type call struct {
	f    *function
	args []node
}

func (o call) eval(v map[string]float64) float64 {
	var x [2]float64
	for i, a := range o.args {
		x[i] = a.eval(v)
	}
	return o.f.eval(x[:len(o.args)])
}

func (o call) deriv(name string) node {
	ds := make([]node, len(o.args))
	for i, a := range o.args {
		ds[i] = a.deriv(name)
	}
	return o.f.deriv(o.args, ds)
}

func (o call) vars(set map[string]bool) {
	for _, a := range o.args {
		a.vars(set)
	}
}

func (o call) String() string {
	s := make([]string, len(o.args))
	for i, a := range o.args {
		s[i] = a.String()
	}
	return o.f.name + "(" + strings.Join(s, ",") + ")"
}

// constructors with constant folding

func isNum(a node, v float64) bool {
	n, ok := a.(num)
	return ok && float64(n) == v
}

func mkNeg(a node) node {
	if n, ok := a.(num); ok {
		return -n
	}
	return neg{a}
}

func mkBinary(op byte, a, b node) node {
	na, oka := a.(num)
	nb, okb := b.(num)
	if oka && okb {
		return num(binary{op, na, nb}.eval(nil))
	}
	return binary{op, a, b}
}

func mkAdd(a, b node) node {
	if isNum(a, 0) {
		return b
	}
	if isNum(b, 0) {
		return a
	}
	return mkBinary('+', a, b)
}

func mkSub(a, b node) node {
	if isNum(b, 0) {
		return a
	}
	if isNum(a, 0) {
		return mkNeg(b)
	}
	return mkBinary('-', a, b)
}

func mkMul(a, b node) node {
	if isNum(a, 0) || isNum(b, 0) {
		return num(0)
	}
	if isNum(a, 1) {
		return b
	}
	if isNum(b, 1) {
		return a
	}
	return mkBinary('*', a, b)
}

func mkDiv(a, b node) node {
	if isNum(a, 0) {
		return num(0)
	}
	if isNum(b, 1) {
		return a
	}
	return mkBinary('/', a, b)
}

func mkPow(a, b node) node {
	if isNum(b, 0) {
		return num(1)
	}
	if isNum(b, 1) {
		return a
	}
	return mkBinary('^', a, b)
}

func mkCall(name string, args ...node) node {
	f := functions[name]
	for _, a := range args {
		if _, ok := a.(num); !ok {
			return call{f, args}
		}
	}
	return num(call{f, args}.eval(nil))
}

// powDeriv returns d(a^b) = a^b (db log(a) + b da / a)
func powDeriv(a, b, da, db node) node {
	if isNum(db, 0) {
		return mkMul(mkMul(b, mkPow(a, mkSub(b, num(1)))), da)
	}
	return mkMul(mkPow(a, b), mkAdd(mkMul(db, mkCall("log", a)), mkDiv(mkMul(b, da), a)))
}

// functions //////////////////////////////////////////////////////////////////////////////////////

type function struct {
	name  string
	nargs int
	eval  func(x []float64) float64
	deriv func(a, da []node) node
}

var functions = map[string]*function{}

func init() {
	unary := func(name string, f func(float64) float64, d func(a node) node) {
		functions[name] = &function{name, 1,
			func(x []float64) float64 { return f(x[0]) },
			func(a, da []node) node { return mkMul(d(a[0]), da[0]) },
		}
	}
	unary("sin", math.Sin, func(a node) node { return mkCall("cos", a) })
	unary("cos", math.Cos, func(a node) node { return mkNeg(mkCall("sin", a)) })
	unary("tan", math.Tan, func(a node) node { return mkDiv(num(1), mkPow(mkCall("cos", a), num(2))) })
	unary("exp", math.Exp, func(a node) node { return mkCall("exp", a) })
	unary("log", math.Log, func(a node) node { return mkDiv(num(1), a) })
	unary("sqrt", math.Sqrt, func(a node) node { return mkDiv(num(0.5), mkCall("sqrt", a)) })
	unary("abs", math.Abs, func(a node) node { return mkCall("sign", a) })
	unary("sign", sign, func(a node) node { return num(0) })
	functions["pow"] = &function{"pow", 2,
		func(x []float64) float64 { return math.Pow(x[0], x[1]) },
		func(a, da []node) node { return powDeriv(a[0], a[1], da[0], da[1]) },
	}
	functions["min"] = &function{"min", 2,
		func(x []float64) float64 { return math.Min(x[0], x[1]) },
		func(a, da []node) node { return switchDeriv(mkSub(a[1], a[0]), da[0], da[1]) },
	}
	functions["max"] = &function{"max", 2,
		func(x []float64) float64 { return math.Max(x[0], x[1]) },
		func(a, da []node) node { return switchDeriv(mkSub(a[0], a[1]), da[0], da[1]) },
	}
}

// switchDeriv returns h(s) da + (1-h(s)) db with the step h(s) = (1+sign(s))/2
func switchDeriv(s, da, db node) node {
	h := mkMul(num(0.5), mkAdd(num(1), mkCall("sign", s)))
	return mkAdd(mkMul(h, da), mkMul(mkSub(num(1), h), db))
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// parser /////////////////////////////////////////////////////////////////////////////////////////

type token struct {
	kind byte // 'n' number, 'i' identifier, or the operator itself
	text string
	col  int
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (o *parser) errorf(t token, msg string, prm ...interface{}) error {
	return chk.Err("cannot parse %q: %s at column %d", o.src, io.Sf(msg, prm...), t.col)
}

func (o *parser) tokenize() error {
	rs := []rune(o.src)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
				k := j + 1
				if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
					k++
				}
				if k < len(rs) && unicode.IsDigit(rs[k]) {
					for k < len(rs) && unicode.IsDigit(rs[k]) {
						k++
					}
					j = k
				}
			}
			o.toks = append(o.toks, token{'n', string(rs[i:j]), i + 1})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			o.toks = append(o.toks, token{'i', string(rs[i:j]), i + 1})
			i = j
		case strings.ContainsRune("+-*/^(),", c):
			o.toks = append(o.toks, token{byte(c), string(c), i + 1})
			i++
		default:
			return o.errorf(token{col: i + 1}, "invalid character %q", c)
		}
	}
	return nil
}

func (o *parser) peek() (t token, ok bool) {
	if o.pos < len(o.toks) {
		return o.toks[o.pos], true
	}
	return token{col: len([]rune(o.src)) + 1}, false
}

func (o *parser) expect(kind byte) error {
	t, ok := o.peek()
	if !ok || t.kind != kind {
		if !ok {
			return o.errorf(t, "expected %q but found end of expression", string(kind))
		}
		return o.errorf(t, "expected %q but found %q", string(kind), t.text)
	}
	o.pos++
	return nil
}

// expr := term {("+"|"-") term}
func (o *parser) expr() (node, error) {
	a, err := o.term()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := o.peek()
		if !ok || (t.kind != '+' && t.kind != '-') {
			return a, nil
		}
		o.pos++
		b, err := o.term()
		if err != nil {
			return nil, err
		}
		a = mkBinary(t.kind, a, b)
	}
}

// term := unary {("*"|"/") unary}
func (o *parser) term() (node, error) {
	a, err := o.unary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := o.peek()
		if !ok || (t.kind != '*' && t.kind != '/') {
			return a, nil
		}
		o.pos++
		b, err := o.unary()
		if err != nil {
			return nil, err
		}
		a = mkBinary(t.kind, a, b)
	}
}

// unary := ("-"|"+") unary | power
func (o *parser) unary() (node, error) {
	t, ok := o.peek()
	if ok && (t.kind == '-' || t.kind == '+') {
		o.pos++
		a, err := o.unary()
		if err != nil {
			return nil, err
		}
		if t.kind == '-' {
			return mkNeg(a), nil
		}
		return a, nil
	}
	return o.power()
}

// power := primary ["^" unary]
func (o *parser) power() (node, error) {
	a, err := o.primary()
	if err != nil {
		return nil, err
	}
	if t, ok := o.peek(); ok && t.kind == '^' {
		o.pos++
		b, err := o.unary()
		if err != nil {
			return nil, err
		}
		return mkBinary('^', a, b), nil
	}
	return a, nil
}

// primary := number | identifier | identifier "(" args ")" | "(" expr ")"
func (o *parser) primary() (node, error) {
	t, ok := o.peek()
	if !ok {
		return nil, o.errorf(t, "unexpected end of expression")
	}
	o.pos++
	switch t.kind {
	case 'n':
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, o.errorf(t, "invalid number %q", t.text)
		}
		return num(v), nil
	case 'i':
		if n, ok := o.peek(); !ok || n.kind != '(' {
			return variable(t.text), nil
		}
		f, found := functions[t.text]
		if !found {
			return nil, o.errorf(t, "unknown function %q", t.text)
		}
		o.pos++
		var args []node
		for {
			a, err := o.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if n, ok := o.peek(); ok && n.kind == ',' {
				o.pos++
				continue
			}
			break
		}
		if err := o.expect(')'); err != nil {
			return nil, err
		}
		if len(args) != f.nargs {
			return nil, o.errorf(t, "function %q requires %d argument(s); %d given", f.name, f.nargs, len(args))
		}
		return mkCall(f.name, args...), nil
	case '(':
		a, err := o.expr()
		if err != nil {
			return nil, err
		}
		if err := o.expect(')'); err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, o.errorf(t, "unexpected %q", t.text)
}
