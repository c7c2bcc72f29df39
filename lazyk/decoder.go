package lazyk

// church2int evaluates n as a Church numeral by applying it to Inc
// and Zero, then reading off the resulting Num node. Because
// reduction memoises, decoding an already-decoded numeral a second
// time is O(1).
func (e *evaluator) church2int(n id) (uint16, error) {
	app := e.a.newApply(e.a.newApply(n, e.p.inc), e.p.zero)
	result, err := e.eval(app)
	if err != nil {
		return 0, err
	}
	rn := e.a.get(result)
	if rn.k != kindNum {
		return 0, &NumeralError{Message: "output is not a Church numeral"}
	}
	return uint16(rn.l), nil
}
