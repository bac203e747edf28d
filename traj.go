/*
 * traj.go, part of gomask.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package mask

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	v3 "github.com/rmera/gomask/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options contains the options for the evaluation of masks over many frames.
type Options struct {
	cpus   int
	skip   int
	logger *logrus.Entry
}

// DefaultOptions returns options that use all logical CPUs, read every
// frame and log nothing.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	l := logrus.New()
	l.SetOutput(io.Discard)
	r.logger = logrus.NewEntry(l)
	return r
}

// Cpus returns the number of goroutines to be used,
// and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

// Skip returns the number of frames skipped between reads in EvaluateTraj,
// and sets it to a new value, if given.
func (O *Options) Skip(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.skip = n[0]
	}
	return O.skip
}

// Logger returns the logger that receives debug information,
// and sets it to a new one, if given.
func (O *Options) Logger(l ...*logrus.Entry) *logrus.Entry {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}

func options(opts []*Options) *Options {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0]
	}
	return DefaultOptions()
}

// EvaluateFrames evaluates C against each frame, in parallel. The ith mask
// returned corresponds to the ith frame. If several frames fail, the error
// of any of them is returned, as an *EvaluationError with its Frame set.
func (C *CompiledMask) EvaluateFrames(top TopologyProvider, frames []CoordinateFrame, opts ...*Options) ([]*Mask, error) {
	o := options(opts)
	return C.evaluateFrames(top, frames, nil, o)
}

// evaluateFrames does the work for EvaluateFrames. If numbers is not nil,
// numbers[i] is the number reported in errors for the ith frame.
func (C *CompiledMask) evaluateFrames(top TopologyProvider, frames []CoordinateFrame, numbers []int, o *Options) ([]*Mask, error) {
	ret := make([]*Mask, len(frames))
	var g errgroup.Group
	g.SetLimit(o.Cpus())
	for i, f := range frames {
		i, f := i, f
		g.Go(func() error {
			m, err := C.Evaluate(top, f)
			if err != nil {
				n := i
				if numbers != nil {
					n = numbers[i]
				}
				return frameErr(n, err)
			}
			ret[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

// frameErr sets the frame number of the evaluation error err.
func frameErr(frame int, err error) error {
	var e *EvaluationError
	if errors.As(err, &e) {
		ret := *e
		ret.Frame = frame
		return &ret
	}
	return &EvaluationError{Frame: frame, Err: err}
}

// boxedFrame is a frame read from a trajectory, with the box read along with it.
type boxedFrame struct {
	*v3.Matrix
	box *Box
}

func (F boxedFrame) BoxDimensions() (*Box, bool) {
	return F.box, F.box != nil
}

// EvaluateTraj evaluates C against each frame of traj, until the trajectory ends,
// skipping Options.Skip frames after each frame read. Frames are read in batches
// of Options.Cpus, and each batch is evaluated in parallel. The box vectors
// read with each frame, if any, are used for CBOX references.
// The masks are returned in frame order. The frame number in errors counts all
// frames in the trajectory, including the skipped ones.
func (C *CompiledMask) EvaluateTraj(top TopologyProvider, traj Traj, opts ...*Options) ([]*Mask, error) {
	o := options(opts)
	log := o.Logger()
	if !traj.Readable() {
		return nil, fmt.Errorf("mask: trajectory not readable")
	}
	if traj.Len() < top.AtomCount() {
		return nil, fmt.Errorf("mask: trajectory has %d atoms per frame, but the topology has %d", traj.Len(), top.AtomCount())
	}
	var ret []*Mask
	frames := make([]CoordinateFrame, 0, o.Cpus())
	numbers := make([]int, 0, o.Cpus())
	flush := func() error {
		if len(frames) == 0 {
			return nil
		}
		log.WithField("first", numbers[0]).WithField("frames", len(frames)).Debug("evaluating batch")
		masks, err := C.evaluateFrames(top, frames, numbers, o)
		if err != nil {
			return err
		}
		ret = append(ret, masks...)
		frames = frames[:0]
		numbers = numbers[:0]
		return nil
	}
	for i := 0; ; i++ {
		if i%(o.Skip()+1) != 0 {
			if err := traj.Next(nil); err != nil {
				if _, ok := err.(LastFrameError); ok {
					break
				}
				return nil, err
			}
			continue
		}
		coords := v3.Zeros(traj.Len())
		box := make([]float64, 9)
		if err := traj.Next(coords, box); err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			return nil, err
		}
		f := boxedFrame{Matrix: coords}
		if b, err := BoxFromVectors(box); err == nil {
			f.box = b
		}
		frames = append(frames, f)
		numbers = append(numbers, i)
		if len(frames) == cap(frames) {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	log.WithField("masks", len(ret)).Debug("trajectory evaluated")
	return ret, nil
}
