package main

import "strconv"

// settableInt is a flag.Value that records whether the flag was given at
// all, so an explicit 0 can be told apart from "not set".
type settableInt struct {
	set bool
	val int
}

func (i *settableInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	i.set = true
	i.val = v
	return nil
}

func (i *settableInt) String() string {
	if i == nil || !i.set {
		return "0"
	}
	return strconv.Itoa(i.val)
}
