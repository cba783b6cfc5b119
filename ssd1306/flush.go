package ssd1306

import "fmt"

// Display sends the damaged part of the framebuffer to the panel and clears
// the damage. It is a no-op when nothing changed. On a bus error the region
// stays damaged so the next call resends it.
func (d *Device) Display() error {
	if !d.ready {
		return ErrNotInitialized
	}
	r := d.dmg.Take()
	if r.Empty() {
		return nil
	}

	err := d.bus.Command(
		cmdColumnAddr, byte(r.Column), byte(r.EndColumn()),
		cmdPageAddr, byte(r.Page), byte(r.EndPage()),
	)
	if err == nil {
		d.scratch, err = d.fb.AppendRegion(d.scratch[:0], r.Column, r.Page, r.Width, r.Pages)
	}
	if err == nil {
		err = d.bus.Data(d.scratch)
	}
	if err != nil {
		d.dmg.Merge(r)
		err = fmt.Errorf("ssd1306: flush %dx%d at (%d,%d): %w", r.Width, r.Pages, r.Column, r.Page, err)
		d.log.WriteLineString(err.Error())
		return err
	}
	return nil
}
