// functors_test.go file
package utils_test

import (
	"reflect"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/utils"
)

func TestMap(t *testing.T) {
	elems := []int{1, 2, 3, 4}
	doubledElems := utils.Map(elems, func(i int) int {
		return i * 2
	})

	expected := []int{2, 4, 6, 8}
	if !reflect.DeepEqual(doubledElems, expected) {
		t.Errorf("Expected %v, got %v", expected, doubledElems)
	}
}

func TestMapChangesType(t *testing.T) {
	freqs := utils.Map([]float64{1.5e6, 88e6}, func(f float64) string {
		return utils.FloatToHz(f, 1, false)
	})

	expected := []string{"1.5M", "88.0M"}
	if !reflect.DeepEqual(freqs, expected) {
		t.Errorf("Expected %v, got %v", expected, freqs)
	}
}

func TestFilter(t *testing.T) {
	elems := []int{1, 2, 3, 4, 5, 6}
	filteredElems := utils.Filter(elems, func(i int) bool {
		return i%2 == 0 // Keep only even numbers
	})

	expected := []int{2, 4, 6}
	if !reflect.DeepEqual(filteredElems, expected) {
		t.Errorf("Expected %v, got %v", expected, filteredElems)
	}
}

func TestContains(t *testing.T) {
	if !utils.Contains([]string{"avg", "max"}, "max") {
		t.Errorf("expected max to be found")
	}
	if utils.Contains([]string{"avg", "max"}, "delta") {
		t.Errorf("did not expect delta to be found")
	}
}
