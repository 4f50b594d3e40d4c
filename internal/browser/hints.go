package browser

import (
	"context"
	"encoding/json"
	"fmt"
)

// hintQueryExpression collects the viewport-relative center point of
// every interactive element (links, buttons, form fields, anything
// with a click handler or a non-negative tabindex) visible in the
// current layout, for HintMode's label overlay.
const hintQueryExpression = `
(function() {
	var sel = "a[href], button, input, select, textarea, [onclick], [role=button], [tabindex]";
	var els = document.querySelectorAll(sel);
	var out = [];
	for (var i = 0; i < els.length; i++) {
		var r = els[i].getBoundingClientRect();
		if (r.width <= 0 || r.height <= 0) continue;
		if (r.bottom < 0 || r.right < 0 || r.top > window.innerHeight || r.left > window.innerWidth) continue;
		out.push({x: r.left + r.width / 2, y: r.top + r.height / 2});
	}
	return out;
})()
`

// ElementPosition is one hintable element's viewport-relative center,
// in CSS pixels.
type ElementPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// QueryHintTargets runs hintQueryExpression via Runtime.evaluate and
// decodes the returned array, per §4.7's HintMode target gathering.
func (s *Session) QueryHintTargets(ctx context.Context) ([]ElementPosition, error) {
	raw, err := s.call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    hintQueryExpression,
		"returnByValue": true,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Result struct {
			Value []ElementPosition `json:"value"`
		} `json:"result"`
		ExceptionDetails *struct {
			Text string `json:"text"`
		} `json:"exceptionDetails"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode hint query result: %w", err)
	}
	if result.ExceptionDetails != nil {
		return nil, fmt.Errorf("hint query threw: %s", result.ExceptionDetails.Text)
	}
	return result.Result.Value, nil
}
