package main

import (
	"fmt"
	"strings"

	mandel "github.com/marben/mandelview"
)

// landmarkNames lists the regions accepted by -region.
func landmarkNames() string {
	names := make([]string, len(mandel.Landmarks))
	for i, l := range mandel.Landmarks {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

// startRegion resolves the -region flag. The whole set needs no GoTo, so it
// maps to nil and clients start from the plain initial viewport.
func startRegion(name string) (*mandel.Region, error) {
	if name == "" || name == "whole" {
		return nil, nil
	}
	r, ok := mandel.Landmark(name)
	if !ok {
		return nil, fmt.Errorf("unknown region %q, want one of: %s", name, landmarkNames())
	}
	return &r, nil
}
